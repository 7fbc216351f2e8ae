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
)

type InitializeConfigCommand struct {
	Caller              string
	FeeRecipient        string
	MinFeeAmount        uint64
	FeePercent          uint64
	PaywallCreationCost uint64
}

type InitializeConfigUseCase struct {
	Ledger  ports.Ledger
	Clock   ports.Clock
	Metrics ports.Metrics
	Logger  *slog.Logger
}

// Execute creates the singleton config with the caller as authority. It runs
// exactly once per deployment.
func (u InitializeConfigUseCase) Execute(ctx context.Context, cmd InitializeConfigCommand) (config entities.Config, err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "initialize_config", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	now := application.Now(u.Clock)
	slot := services.ConfigSlot()

	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		if _, loadErr := tx.LoadConfig(ctx, slot); loadErr == nil {
			return domainerrors.ErrSlotAlreadyExists
		} else if !errors.Is(loadErr, domainerrors.ErrSlotNotFound) {
			return loadErr
		}

		created, buildErr := entities.NewConfig(cmd.Caller, entities.FeeSchedule{
			FeeRecipient:        cmd.FeeRecipient,
			MinFeeAmount:        cmd.MinFeeAmount,
			FeePercent:          cmd.FeePercent,
			PaywallCreationCost: cmd.PaywallCreationCost,
		}, now)
		if buildErr != nil {
			return buildErr
		}
		if createErr := tx.CreateConfig(ctx, slot, created); createErr != nil {
			return createErr
		}
		config = created
		return nil
	})
	if err != nil {
		application.LogFailure(logger, "initialize config failed", "paywall_config_initialize_failed", err,
			"caller", cmd.Caller,
			"fee_percent", cmd.FeePercent,
		)
		return entities.Config{}, err
	}

	logger.Info("paywall config initialized",
		"event", "paywall_config_initialized",
		"module", application.ModuleName,
		"layer", "application",
		"authority", config.Authority,
		"fee_recipient", config.FeeRecipient,
		"min_fee_amount", config.MinFeeAmount,
		"fee_percent", config.FeePercent,
		"paywall_creation_cost", config.PaywallCreationCost,
	)
	return config, nil
}
