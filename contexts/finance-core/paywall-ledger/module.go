package paywallledger

import (
	"log/slog"

	httpadapter "paywall/contexts/finance-core/paywall-ledger/adapters/http"
	"paywall/contexts/finance-core/paywall-ledger/adapters/memory"
	"paywall/contexts/finance-core/paywall-ledger/application/commands"
	"paywall/contexts/finance-core/paywall-ledger/application/queries"
	"paywall/contexts/finance-core/paywall-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ledger      ports.Ledger
	Reader      ports.LedgerReader
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.Metrics
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			InitializeConfig: commands.InitializeConfigUseCase{
				Ledger:  deps.Ledger,
				Clock:   deps.Clock,
				Metrics: deps.Metrics,
				Logger:  deps.Logger,
			},
			UpdateFees: commands.UpdateFeesUseCase{
				Ledger:  deps.Ledger,
				Clock:   deps.Clock,
				Metrics: deps.Metrics,
				Logger:  deps.Logger,
			},
			UpdateAuthority: commands.UpdateAuthorityUseCase{
				Ledger:  deps.Ledger,
				Clock:   deps.Clock,
				Metrics: deps.Metrics,
				Logger:  deps.Logger,
			},
			CreatePaywall: commands.CreatePaywallUseCase{
				Ledger:      deps.Ledger,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Metrics:     deps.Metrics,
				Logger:      deps.Logger,
			},
			UpdatePaywall: commands.UpdatePaywallUseCase{
				Ledger:      deps.Ledger,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Metrics:     deps.Metrics,
				Logger:      deps.Logger,
			},
			PurchasePaywall: commands.PurchasePaywallUseCase{
				Ledger:      deps.Ledger,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Metrics:     deps.Metrics,
				Logger:      deps.Logger,
			},
			CreditAccount: commands.CreditAccountUseCase{
				Ledger:  deps.Ledger,
				Metrics: deps.Metrics,
				Logger:  deps.Logger,
			},
			GetConfig:    queries.GetConfigUseCase{Reader: deps.Reader, Logger: deps.Logger},
			GetPaywall:   queries.GetPaywallUseCase{Reader: deps.Reader, Logger: deps.Logger},
			ListPaywalls: queries.ListPaywallsUseCase{Reader: deps.Reader, Logger: deps.Logger},
			GetPayment:   queries.GetPaymentUseCase{Reader: deps.Reader, Logger: deps.Logger},
			GetBalance:   queries.GetBalanceUseCase{Reader: deps.Reader, Logger: deps.Logger},
			Logger:       deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger, metrics ports.Metrics) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger:      store,
		Reader:      store,
		Clock:       store,
		IDGenerator: store,
		Metrics:     metrics,
		Logger:      logger,
	})
	module.Store = store
	return module
}
