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

type GetPaywallQuery struct {
	CreatorID string
	PaywallID string
}

type GetPaywallResult struct {
	Paywall entities.Paywall
	Slot    entities.Slot
}

type GetPaywallUseCase struct {
	Reader ports.LedgerReader
	Logger *slog.Logger
}

func (u GetPaywallUseCase) Execute(ctx context.Context, query GetPaywallQuery) (GetPaywallResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if err := entities.ValidatePaywallID(query.PaywallID); err != nil {
		return GetPaywallResult{}, err
	}
	slot := services.PaywallSlot(query.CreatorID, query.PaywallID)

	paywall, err := u.Reader.GetPaywall(ctx, slot)
	if err != nil {
		application.LogFailure(logger, "get paywall failed", "paywall_get_failed", err,
			"creator_id", query.CreatorID,
			"paywall_id", query.PaywallID,
		)
		return GetPaywallResult{}, err
	}
	return GetPaywallResult{Paywall: paywall, Slot: slot}, nil
}

type ListPaywallsQuery struct {
	CreatorID string
	Limit     int
	Offset    int
}

type ListPaywallsUseCase struct {
	Reader ports.LedgerReader
	Logger *slog.Logger
}

func (u ListPaywallsUseCase) Execute(ctx context.Context, query ListPaywallsQuery) ([]entities.Paywall, error) {
	logger := application.ResolveLogger(u.Logger)
	creatorID := strings.TrimSpace(query.CreatorID)
	if creatorID == "" {
		return nil, domainerrors.ErrInvalidIdentity
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	items, err := u.Reader.ListPaywallsByCreator(ctx, creatorID, limit, offset)
	if err != nil {
		application.LogFailure(logger, "list paywalls failed", "paywall_list_failed", err,
			"creator_id", creatorID,
		)
		return nil, err
	}
	return items, nil
}
