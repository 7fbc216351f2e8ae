package commands

import (
	"context"
	"log/slog"
	"time"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	contractsv1 "paywall/contracts/gen/events/v1"
)

type UpdatePaywallCommand struct {
	Caller      string
	CreatorID   string
	PaywallID   string
	MaxSupply   uint64
	PriceAmount uint64
}

type UpdatePaywallUseCase struct {
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.Metrics
	Logger      *slog.Logger
}

// Execute overwrites price and supply cap. Only the creator may call it.
func (u UpdatePaywallUseCase) Execute(ctx context.Context, cmd UpdatePaywallCommand) (paywall entities.Paywall, err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "update_paywall", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	now := application.Now(u.Clock)

	if err = entities.ValidatePaywallID(cmd.PaywallID); err != nil {
		application.LogFailure(logger, "update paywall rejected", "paywall_update_rejected", err,
			"creator_id", cmd.CreatorID,
			"paywall_id_length", len(cmd.PaywallID),
		)
		return entities.Paywall{}, err
	}
	slot := services.PaywallSlot(cmd.CreatorID, cmd.PaywallID)

	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		current, loadErr := tx.LoadPaywall(ctx, slot)
		if loadErr != nil {
			return loadErr
		}
		updated, updateErr := current.WithTerms(cmd.Caller, cmd.MaxSupply, cmd.PriceAmount, now)
		if updateErr != nil {
			return updateErr
		}
		if saveErr := tx.SavePaywall(ctx, slot, updated); saveErr != nil {
			return saveErr
		}

		envelope, envErr := application.NewPaywallEnvelope(ctx, u.IDGenerator, contractsv1.EventTypePaywallUpdated, slot, now, map[string]any{
			"paywall_id":   updated.ID,
			"creator_id":   updated.CreatorID,
			"max_supply":   updated.MaxSupply,
			"price_amount": updated.PriceAmount,
		})
		if envErr != nil {
			return envErr
		}
		if appendErr := tx.AppendOutbox(ctx, envelope); appendErr != nil {
			return appendErr
		}
		paywall = updated
		return nil
	})
	if err != nil {
		application.LogFailure(logger, "update paywall failed", "paywall_update_failed", err,
			"caller", cmd.Caller,
			"creator_id", cmd.CreatorID,
			"paywall_id", cmd.PaywallID,
		)
		return entities.Paywall{}, err
	}

	logger.Info("paywall updated",
		"event", "paywall_updated",
		"module", application.ModuleName,
		"layer", "application",
		"paywall_id", paywall.ID,
		"creator_id", paywall.CreatorID,
		"price_amount", paywall.PriceAmount,
		"max_supply", paywall.MaxSupply,
		"minted_count", paywall.MintedCount,
	)
	return paywall, nil
}
