package queries

import (
	"context"
	"log/slog"
	"strings"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
)

type GetPaymentQuery struct {
	CreatorID string
	PaywallID string
	PayerID   string
}

// GetPaymentUseCase answers "has this payer bought this paywall" by locating
// the receipt at its derived slot.
type GetPaymentUseCase struct {
	Reader ports.LedgerReader
	Logger *slog.Logger
}

func (u GetPaymentUseCase) Execute(ctx context.Context, query GetPaymentQuery) (entities.Payment, error) {
	logger := application.ResolveLogger(u.Logger)
	if err := entities.ValidatePaywallID(query.PaywallID); err != nil {
		return entities.Payment{}, err
	}
	if strings.TrimSpace(query.PayerID) == "" {
		return entities.Payment{}, domainerrors.ErrInvalidIdentity
	}

	payment, err := u.Reader.GetPayment(ctx, services.PaymentSlot(query.CreatorID, query.PaywallID, query.PayerID))
	if err != nil {
		application.LogFailure(logger, "get payment failed", "paywall_payment_get_failed", err,
			"creator_id", query.CreatorID,
			"paywall_id", query.PaywallID,
			"payer_id", query.PayerID,
		)
		return entities.Payment{}, err
	}
	return payment, nil
}

type GetBalanceUseCase struct {
	Reader ports.LedgerReader
	Logger *slog.Logger
}

func (u GetBalanceUseCase) Execute(ctx context.Context, accountID string) (uint64, error) {
	if strings.TrimSpace(accountID) == "" {
		return 0, domainerrors.ErrInvalidIdentity
	}
	balance, err := u.Reader.GetBalance(ctx, accountID)
	if err != nil {
		application.LogFailure(application.ResolveLogger(u.Logger), "get balance failed", "ledger_balance_get_failed", err,
			"account_id", accountID,
		)
		return 0, err
	}
	return balance, nil
}
