package commands

import (
	"context"
	"log/slog"
	"time"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
)

type UpdateFeesCommand struct {
	Caller              string
	FeeRecipient        string
	MinFeeAmount        uint64
	FeePercent          uint64
	PaywallCreationCost uint64
}

type UpdateFeesUseCase struct {
	Ledger  ports.Ledger
	Clock   ports.Clock
	Metrics ports.Metrics
	Logger  *slog.Logger
}

func (u UpdateFeesUseCase) Execute(ctx context.Context, cmd UpdateFeesCommand) (config entities.Config, err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "update_fees", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	now := application.Now(u.Clock)
	slot := services.ConfigSlot()

	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		current, loadErr := tx.LoadConfigForUpdate(ctx, slot)
		if loadErr != nil {
			return loadErr
		}
		updated, updateErr := current.WithFees(cmd.Caller, entities.FeeSchedule{
			FeeRecipient:        cmd.FeeRecipient,
			MinFeeAmount:        cmd.MinFeeAmount,
			FeePercent:          cmd.FeePercent,
			PaywallCreationCost: cmd.PaywallCreationCost,
		}, now)
		if updateErr != nil {
			return updateErr
		}
		if saveErr := tx.SaveConfig(ctx, slot, updated); saveErr != nil {
			return saveErr
		}
		config = updated
		return nil
	})
	if err != nil {
		application.LogFailure(logger, "update fees failed", "paywall_config_update_fees_failed", err,
			"caller", cmd.Caller,
			"fee_percent", cmd.FeePercent,
		)
		return entities.Config{}, err
	}

	logger.Info("paywall fees updated",
		"event", "paywall_config_fees_updated",
		"module", application.ModuleName,
		"layer", "application",
		"fee_recipient", config.FeeRecipient,
		"min_fee_amount", config.MinFeeAmount,
		"fee_percent", config.FeePercent,
		"paywall_creation_cost", config.PaywallCreationCost,
	)
	return config, nil
}
