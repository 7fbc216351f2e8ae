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

type UpdateAuthorityCommand struct {
	Caller       string
	NewAuthority string
}

type UpdateAuthorityUseCase struct {
	Ledger  ports.Ledger
	Clock   ports.Clock
	Metrics ports.Metrics
	Logger  *slog.Logger
}

func (u UpdateAuthorityUseCase) Execute(ctx context.Context, cmd UpdateAuthorityCommand) (config entities.Config, err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "update_authority", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	now := application.Now(u.Clock)
	slot := services.ConfigSlot()

	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		current, loadErr := tx.LoadConfigForUpdate(ctx, slot)
		if loadErr != nil {
			return loadErr
		}
		updated, updateErr := current.WithAuthority(cmd.Caller, cmd.NewAuthority, now)
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
		application.LogFailure(logger, "update authority failed", "paywall_config_update_authority_failed", err,
			"caller", cmd.Caller,
			"new_authority", cmd.NewAuthority,
		)
		return entities.Config{}, err
	}

	logger.Info("paywall authority updated",
		"event", "paywall_config_authority_updated",
		"module", application.ModuleName,
		"layer", "application",
		"previous_authority", cmd.Caller,
		"authority", config.Authority,
	)
	return config, nil
}
