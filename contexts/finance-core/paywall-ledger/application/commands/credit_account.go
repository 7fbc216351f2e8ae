package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
)

type CreditAccountCommand struct {
	Caller    string
	AccountID string
	Amount    uint64
}

type CreditAccountUseCase struct {
	Ledger  ports.Ledger
	Metrics ports.Metrics
	Logger  *slog.Logger
}

// Execute funds an account from outside the ledger. Only the config
// authority may mint balances.
func (u CreditAccountUseCase) Execute(ctx context.Context, cmd CreditAccountCommand) (err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "credit_account", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)

	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		config, loadErr := tx.LoadConfig(ctx, services.ConfigSlot())
		if loadErr != nil {
			return loadErr
		}
		if authErr := config.Authorize(cmd.Caller); authErr != nil {
			return authErr
		}
		if accountID == "" {
			return domainerrors.ErrInvalidIdentity
		}
		return tx.Credit(ctx, accountID, cmd.Amount)
	})
	if err != nil {
		application.LogFailure(logger, "credit account failed", "paywall_account_credit_failed", err,
			"caller", cmd.Caller,
			"account_id", accountID,
			"amount", cmd.Amount,
		)
		return err
	}

	logger.Info("account credited",
		"event", "paywall_account_credited",
		"module", application.ModuleName,
		"layer", "application",
		"caller", cmd.Caller,
		"account_id", accountID,
		"amount", cmd.Amount,
	)
	return nil
}
