package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	contractsv1 "paywall/contracts/gen/events/v1"
)

type PurchasePaywallCommand struct {
	Payer     string
	CreatorID string
	PaywallID string
}

type PurchasePaywallResult struct {
	Payment     entities.Payment
	Paywall     entities.Paywall
	PaymentSlot entities.Slot
}

type PurchasePaywallUseCase struct {
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Metrics     ports.Metrics
	Logger      *slog.Logger
}

// Execute settles one purchase. Every step shares a single commit boundary:
// 1) load the paywall (locked) and the fee config
// 2) tentative mint against the supply cap
// 3) the payment slot for (creator, paywall, payer) must be empty
// 4) fee split
// 5) transfer payer -> fee recipient, then payer -> creator
// 6) persist payment receipt, minted count, and paywall.minted outbox row.
// A failure at any step discards the mint, the receipt, and both transfers.
func (u PurchasePaywallUseCase) Execute(ctx context.Context, cmd PurchasePaywallCommand) (result PurchasePaywallResult, err error) {
	startedAt := time.Now()
	defer func() { application.Observe(u.Metrics, "purchase_paywall", err, startedAt) }()

	logger := application.ResolveLogger(u.Logger)
	now := application.Now(u.Clock)

	cmd.Payer = strings.TrimSpace(cmd.Payer)
	cmd.CreatorID = strings.TrimSpace(cmd.CreatorID)
	if cmd.Payer == "" || cmd.CreatorID == "" {
		err = domainerrors.ErrInvalidIdentity
	} else {
		err = entities.ValidatePaywallID(cmd.PaywallID)
	}
	if err != nil {
		application.LogFailure(logger, "purchase paywall rejected", "paywall_purchase_rejected", err,
			"payer_id", cmd.Payer,
			"creator_id", cmd.CreatorID,
		)
		return PurchasePaywallResult{}, err
	}

	paywallSlot := services.PaywallSlot(cmd.CreatorID, cmd.PaywallID)
	paymentSlot := services.PaymentSlot(cmd.CreatorID, cmd.PaywallID, cmd.Payer)

	err = u.Ledger.Atomically(ctx, func(tx ports.LedgerTx) error {
		paywall, loadErr := tx.LoadPaywall(ctx, paywallSlot)
		if loadErr != nil {
			return loadErr
		}
		config, loadErr := tx.LoadConfig(ctx, services.ConfigSlot())
		if loadErr != nil {
			return loadErr
		}

		minted, mintErr := paywall.Mint(now)
		if mintErr != nil {
			return mintErr
		}

		if _, existingErr := tx.LoadPayment(ctx, paymentSlot); existingErr == nil {
			return domainerrors.ErrSlotAlreadyExists
		} else if !errors.Is(existingErr, domainerrors.ErrSlotNotFound) {
			return existingErr
		}

		split, splitErr := services.ComputeSplit(paywall.PriceAmount, config.Schedule())
		if splitErr != nil {
			return splitErr
		}

		if transferErr := tx.Transfer(ctx, cmd.Payer, config.FeeRecipient, split.FeeAmount); transferErr != nil {
			return transferErr
		}
		if transferErr := tx.Transfer(ctx, cmd.Payer, paywall.CreatorID, split.CreatorAmount); transferErr != nil {
			return transferErr
		}

		payment, paymentErr := entities.NewPayment(paywall, cmd.Payer, split, now)
		if paymentErr != nil {
			return paymentErr
		}
		if createErr := tx.CreatePayment(ctx, paymentSlot, payment); createErr != nil {
			return createErr
		}
		if saveErr := tx.SavePaywall(ctx, paywallSlot, minted); saveErr != nil {
			return saveErr
		}

		envelope, envErr := application.NewPaywallEnvelope(ctx, u.IDGenerator, contractsv1.EventTypePaywallMinted, paywallSlot, now, map[string]any{
			"paywall_id":     paywall.ID,
			"creator_id":     paywall.CreatorID,
			"payer_id":       payment.PayerID,
			"amount_paid":    payment.AmountPaid,
			"fee_amount":     payment.FeeAmount,
			"creator_amount": payment.CreatorAmount,
		})
		if envErr != nil {
			return envErr
		}
		if appendErr := tx.AppendOutbox(ctx, envelope); appendErr != nil {
			return appendErr
		}

		result = PurchasePaywallResult{
			Payment:     payment,
			Paywall:     minted,
			PaymentSlot: paymentSlot,
		}
		return nil
	})
	if err != nil {
		application.LogFailure(logger, "purchase paywall failed", "paywall_purchase_failed", err,
			"payer_id", cmd.Payer,
			"creator_id", cmd.CreatorID,
			"paywall_id", cmd.PaywallID,
		)
		return PurchasePaywallResult{}, err
	}

	if u.Metrics != nil {
		u.Metrics.ObserveSettlement(entities.Split{
			Price:         result.Payment.AmountPaid,
			FeeAmount:     result.Payment.FeeAmount,
			CreatorAmount: result.Payment.CreatorAmount,
		})
	}

	logger.Info("paywall minted",
		"event", "paywall_minted",
		"module", application.ModuleName,
		"layer", "application",
		"paywall_id", result.Paywall.ID,
		"creator_id", result.Paywall.CreatorID,
		"payer_id", result.Payment.PayerID,
		"amount_paid", result.Payment.AmountPaid,
		"fee_amount", result.Payment.FeeAmount,
		"creator_amount", result.Payment.CreatorAmount,
		"minted_count", result.Paywall.MintedCount,
	)
	return result, nil
}
