package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	contractsv1 "paywall/contracts/gen/events/v1"
)

type CreatePaywallCommand struct {
	Caller      string
	PaywallID   string
	MaxSupply   uint64
	PriceAmount uint64
}

type CreatePaywallResult struct {
	Paywall     entities.Paywall
	Slot        entities.Slot
	CreationFee uint64
}

type CreatePaywallUseCase struct {
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.Metrics
	Logger      *slog.Logger
}

// Execute registers a paywall owned by the caller in this order:
// 1) id validation and slot derivation
// 2) slot must be empty
// 3) creation fee transfer to the fee recipient, when configured
// 4) record + paywall.created outbox write, all in one transaction.
func (u CreatePaywallUseCase) Execute(ctx context.Context, cmd CreatePaywallCommand) (result CreatePaywallResult, err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "create_paywall", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	now := application.Now(u.Clock)

	paywall, err := entities.NewPaywall(cmd.Caller, cmd.PaywallID, cmd.MaxSupply, cmd.PriceAmount, now)
	if err != nil {
		application.LogFailure(logger, "create paywall rejected", "paywall_create_rejected", err,
			"creator_id", cmd.Caller,
			"paywall_id_length", len(cmd.PaywallID),
		)
		return CreatePaywallResult{}, err
	}
	slot := services.PaywallSlot(paywall.CreatorID, paywall.ID)

	var creationFee uint64
	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		config, loadErr := tx.LoadConfig(ctx, services.ConfigSlot())
		if loadErr != nil {
			return loadErr
		}
		if _, existingErr := tx.LoadPaywall(ctx, slot); existingErr == nil {
			return domainerrors.ErrSlotAlreadyExists
		} else if !errors.Is(existingErr, domainerrors.ErrSlotNotFound) {
			return existingErr
		}

		if config.PaywallCreationCost > 0 {
			if transferErr := tx.Transfer(ctx, paywall.CreatorID, config.FeeRecipient, config.PaywallCreationCost); transferErr != nil {
				return transferErr
			}
			creationFee = config.PaywallCreationCost
		}

		if createErr := tx.CreatePaywall(ctx, slot, paywall); createErr != nil {
			return createErr
		}

		envelope, envErr := application.NewPaywallEnvelope(ctx, u.IDGenerator, contractsv1.EventTypePaywallCreated, slot, now, map[string]any{
			"paywall_id": paywall.ID,
			"creator_id": paywall.CreatorID,
		})
		if envErr != nil {
			return envErr
		}
		return tx.AppendOutbox(ctx, envelope)
	})
	if err != nil {
		application.LogFailure(logger, "create paywall failed", "paywall_create_failed", err,
			"creator_id", paywall.CreatorID,
			"paywall_id", paywall.ID,
		)
		return CreatePaywallResult{}, err
	}

	logger.Info("paywall created",
		"event", "paywall_created",
		"module", application.ModuleName,
		"layer", "application",
		"paywall_id", paywall.ID,
		"paywall_key", slot.String(),
		"creator_id", paywall.CreatorID,
		"price_amount", paywall.PriceAmount,
		"max_supply", paywall.MaxSupply,
		"creation_fee", creationFee,
	)
	return CreatePaywallResult{
		Paywall:     paywall,
		Slot:        slot,
		CreationFee: creationFee,
	}, nil
}
