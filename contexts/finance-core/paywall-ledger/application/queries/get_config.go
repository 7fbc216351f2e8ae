package queries

import (
	"context"
	"log/slog"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
)

type GetConfigUseCase struct {
	Reader ports.LedgerReader
	Logger *slog.Logger
}

func (u GetConfigUseCase) Execute(ctx context.Context) (entities.Config, error) {
	logger := application.ResolveLogger(u.Logger)
	config, err := u.Reader.GetConfig(ctx, services.ConfigSlot())
	if err != nil {
		application.LogFailure(logger, "get config failed", "paywall_config_get_failed", err)
		return entities.Config{}, err
	}
	return config, nil
}
