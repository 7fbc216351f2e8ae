// Package httpadapter maps ledger transport DTOs onto use cases.
//
// @title Paywall Ledger API
// @version 1.0
// @description Pay-per-access paywall registry and fee settlement ledger.
// @BasePath /
package httpadapter

//go:generate swag init --generalInfo handler.go --dir ./,../../transport/http --output ../../../../../internal/platform/httpserver/docs --outputTypes go

import (
	"context"
	"log/slog"
	"time"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/application/commands"
	"paywall/contexts/finance-core/paywall-ledger/application/queries"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	httptransport "paywall/contexts/finance-core/paywall-ledger/transport/http"
)

type Handler struct {
	InitializeConfig commands.InitializeConfigUseCase
	UpdateFees       commands.UpdateFeesUseCase
	UpdateAuthority  commands.UpdateAuthorityUseCase
	CreatePaywall    commands.CreatePaywallUseCase
	UpdatePaywall    commands.UpdatePaywallUseCase
	PurchasePaywall  commands.PurchasePaywallUseCase
	CreditAccount    commands.CreditAccountUseCase
	GetConfig        queries.GetConfigUseCase
	GetPaywall       queries.GetPaywallUseCase
	ListPaywalls     queries.ListPaywallsUseCase
	GetPayment       queries.GetPaymentUseCase
	GetBalance       queries.GetBalanceUseCase
	Logger           *slog.Logger
}

// InitializeConfigHandler godoc
// @Summary Initialize fee configuration
// @Description Creates the singleton fee configuration. The caller becomes its authority.
// @Tags paywall-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity (base58)"
// @Param request body httptransport.InitializeConfigRequest true "Fee schedule"
// @Success 201 {object} httptransport.ConfigResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/paywall-config [post]
func (h Handler) InitializeConfigHandler(
	ctx context.Context,
	callerID string,
	req httptransport.InitializeConfigRequest,
) (httptransport.ConfigResponse, error) {
	config, err := h.InitializeConfig.Execute(ctx, commands.InitializeConfigCommand{
		Caller:              callerID,
		FeeRecipient:        req.FeeRecipient,
		MinFeeAmount:        req.MinFeeAmount,
		FeePercent:          req.FeePercent,
		PaywallCreationCost: req.PaywallCreationCost,
	})
	if err != nil {
		return httptransport.ConfigResponse{}, err
	}
	return httptransport.ConfigResponse{Status: "success", Data: toConfigDTO(config)}, nil
}

// GetConfigHandler godoc
// @Summary Get fee configuration
// @Tags paywall-ledger
// @Produce json
// @Success 200 {object} httptransport.ConfigResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/paywall-config [get]
func (h Handler) GetConfigHandler(ctx context.Context) (httptransport.ConfigResponse, error) {
	config, err := h.GetConfig.Execute(ctx)
	if err != nil {
		return httptransport.ConfigResponse{}, err
	}
	return httptransport.ConfigResponse{Status: "success", Data: toConfigDTO(config)}, nil
}

// UpdateFeesHandler godoc
// @Summary Replace the fee schedule
// @Tags paywall-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Config authority (base58)"
// @Param request body httptransport.UpdateFeesRequest true "Fee schedule"
// @Success 200 {object} httptransport.ConfigResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/paywall-config/fees [put]
func (h Handler) UpdateFeesHandler(
	ctx context.Context,
	callerID string,
	req httptransport.UpdateFeesRequest,
) (httptransport.ConfigResponse, error) {
	config, err := h.UpdateFees.Execute(ctx, commands.UpdateFeesCommand{
		Caller:              callerID,
		FeeRecipient:        req.FeeRecipient,
		MinFeeAmount:        req.MinFeeAmount,
		FeePercent:          req.FeePercent,
		PaywallCreationCost: req.PaywallCreationCost,
	})
	if err != nil {
		return httptransport.ConfigResponse{}, err
	}
	return httptransport.ConfigResponse{Status: "success", Data: toConfigDTO(config)}, nil
}

// UpdateAuthorityHandler godoc
// @Summary Hand over config authority
// @Tags paywall-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Current authority (base58)"
// @Param request body httptransport.UpdateAuthorityRequest true "New authority"
// @Success 200 {object} httptransport.ConfigResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /v1/paywall-config/authority [put]
func (h Handler) UpdateAuthorityHandler(
	ctx context.Context,
	callerID string,
	req httptransport.UpdateAuthorityRequest,
) (httptransport.ConfigResponse, error) {
	config, err := h.UpdateAuthority.Execute(ctx, commands.UpdateAuthorityCommand{
		Caller:       callerID,
		NewAuthority: req.NewAuthority,
	})
	if err != nil {
		return httptransport.ConfigResponse{}, err
	}
	return httptransport.ConfigResponse{Status: "success", Data: toConfigDTO(config)}, nil
}

// CreatePaywallHandler godoc
// @Summary Create a paywall
// @Description Registers a paywall under the caller's namespace and charges the creation cost.
// @Tags paywall-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Creator identity (base58)"
// @Param request body httptransport.CreatePaywallRequest true "Paywall terms"
// @Success 201 {object} httptransport.PaywallResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/paywalls [post]
func (h Handler) CreatePaywallHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CreatePaywallRequest,
) (httptransport.PaywallResponse, error) {
	result, err := h.CreatePaywall.Execute(ctx, commands.CreatePaywallCommand{
		Caller:      callerID,
		PaywallID:   req.PaywallID,
		MaxSupply:   req.MaxSupply,
		PriceAmount: req.PriceAmount,
	})
	if err != nil {
		return httptransport.PaywallResponse{}, err
	}
	return httptransport.PaywallResponse{
		Status:      "success",
		CreationFee: result.CreationFee,
		Data:        toPaywallDTO(result.Slot, result.Paywall),
	}, nil
}

// ListPaywallsHandler godoc
// @Summary List a creator's paywalls
// @Tags paywall-ledger
// @Produce json
// @Param creator_id path string true "Creator identity"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} httptransport.ListPaywallsResponse
// @Router /v1/creators/{creator_id}/paywalls [get]
func (h Handler) ListPaywallsHandler(
	ctx context.Context,
	req httptransport.ListPaywallsRequest,
) (httptransport.ListPaywallsResponse, error) {
	items, err := h.ListPaywalls.Execute(ctx, queries.ListPaywallsQuery{
		CreatorID: req.CreatorID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		return httptransport.ListPaywallsResponse{}, err
	}
	resp := httptransport.ListPaywallsResponse{
		Status: "success",
		Data:   make([]httptransport.PaywallDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Data = append(resp.Data, toPaywallDTO(services.PaywallSlot(item.CreatorID, item.ID), item))
	}
	return resp, nil
}

// GetPaywallHandler godoc
// @Summary Get a paywall
// @Tags paywall-ledger
// @Produce json
// @Param creator_id path string true "Creator identity"
// @Param paywall_id path string true "Paywall id"
// @Success 200 {object} httptransport.PaywallResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/creators/{creator_id}/paywalls/{paywall_id} [get]
func (h Handler) GetPaywallHandler(ctx context.Context, creatorID string, paywallID string) (httptransport.PaywallResponse, error) {
	result, err := h.GetPaywall.Execute(ctx, queries.GetPaywallQuery{
		CreatorID: creatorID,
		PaywallID: paywallID,
	})
	if err != nil {
		return httptransport.PaywallResponse{}, err
	}
	return httptransport.PaywallResponse{Status: "success", Data: toPaywallDTO(result.Slot, result.Paywall)}, nil
}

// UpdatePaywallHandler godoc
// @Summary Update paywall price and supply cap
// @Tags paywall-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Creator identity (base58)"
// @Param creator_id path string true "Creator identity"
// @Param paywall_id path string true "Paywall id"
// @Param request body httptransport.UpdatePaywallRequest true "New terms"
// @Success 200 {object} httptransport.PaywallResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/creators/{creator_id}/paywalls/{paywall_id} [put]
func (h Handler) UpdatePaywallHandler(
	ctx context.Context,
	callerID string,
	creatorID string,
	paywallID string,
	req httptransport.UpdatePaywallRequest,
) (httptransport.PaywallResponse, error) {
	paywall, err := h.UpdatePaywall.Execute(ctx, commands.UpdatePaywallCommand{
		Caller:      callerID,
		CreatorID:   creatorID,
		PaywallID:   paywallID,
		MaxSupply:   req.MaxSupply,
		PriceAmount: req.PriceAmount,
	})
	if err != nil {
		return httptransport.PaywallResponse{}, err
	}
	return httptransport.PaywallResponse{
		Status: "success",
		Data:   toPaywallDTO(services.PaywallSlot(paywall.CreatorID, paywall.ID), paywall),
	}, nil
}

// PurchasePaywallHandler godoc
// @Summary Purchase access to a paywall
// @Description Splits the price between fee recipient and creator and records the caller's receipt.
// @Tags paywall-ledger
// @Produce json
// @Param X-User-Id header string true "Payer identity (base58)"
// @Param creator_id path string true "Creator identity"
// @Param paywall_id path string true "Paywall id"
// @Success 201 {object} httptransport.PurchaseResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /v1/creators/{creator_id}/paywalls/{paywall_id}/purchase [post]
func (h Handler) PurchasePaywallHandler(
	ctx context.Context,
	payerID string,
	creatorID string,
	paywallID string,
) (httptransport.PurchaseResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("purchase request received",
		"event", "http_paywall_purchase_received",
		"module", application.ModuleName,
		"layer", "transport",
		"creator_id", creatorID,
		"paywall_id", paywallID,
	)

	result, err := h.PurchasePaywall.Execute(ctx, commands.PurchasePaywallCommand{
		Payer:     payerID,
		CreatorID: creatorID,
		PaywallID: paywallID,
	})
	if err != nil {
		return httptransport.PurchaseResponse{}, err
	}
	return httptransport.PurchaseResponse{
		Status:  "success",
		Payment: toPaymentDTO(result.PaymentSlot, result.Payment),
		Paywall: toPaywallDTO(services.PaywallSlot(result.Paywall.CreatorID, result.Paywall.ID), result.Paywall),
	}, nil
}

// GetPaymentHandler godoc
// @Summary Get a payment receipt
// @Tags paywall-ledger
// @Produce json
// @Param creator_id path string true "Creator identity"
// @Param paywall_id path string true "Paywall id"
// @Param payer_id path string true "Payer identity"
// @Success 200 {object} httptransport.PaymentResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/creators/{creator_id}/paywalls/{paywall_id}/payments/{payer_id} [get]
func (h Handler) GetPaymentHandler(
	ctx context.Context,
	creatorID string,
	paywallID string,
	payerID string,
) (httptransport.PaymentResponse, error) {
	payment, err := h.GetPayment.Execute(ctx, queries.GetPaymentQuery{
		CreatorID: creatorID,
		PaywallID: paywallID,
		PayerID:   payerID,
	})
	if err != nil {
		return httptransport.PaymentResponse{}, err
	}
	slot := services.PaymentSlot(payment.CreatorID, payment.PaywallID, payment.PayerID)
	return httptransport.PaymentResponse{Status: "success", Data: toPaymentDTO(slot, payment)}, nil
}

// GetBalanceHandler godoc
// @Summary Get an account balance
// @Tags paywall-ledger
// @Produce json
// @Param account_id path string true "Account identity"
// @Success 200 {object} httptransport.BalanceResponse
// @Router /v1/accounts/{account_id}/balance [get]
func (h Handler) GetBalanceHandler(ctx context.Context, accountID string) (httptransport.BalanceResponse, error) {
	balance, err := h.GetBalance.Execute(ctx, accountID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	resp := httptransport.BalanceResponse{Status: "success"}
	resp.Data.AccountID = accountID
	resp.Data.Balance = balance
	return resp, nil
}

// CreditAccountHandler godoc
// @Summary Fund an account
// @Description Adds funds to an account balance. Only the config authority may call it.
// @Tags paywall-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Authority identity (base58)"
// @Param account_id path string true "Account identity"
// @Param request body httptransport.CreditAccountRequest true "Amount"
// @Success 200 {object} httptransport.BalanceResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /v1/accounts/{account_id}/credit [post]
func (h Handler) CreditAccountHandler(
	ctx context.Context,
	callerID string,
	accountID string,
	req httptransport.CreditAccountRequest,
) (httptransport.BalanceResponse, error) {
	if err := h.CreditAccount.Execute(ctx, commands.CreditAccountCommand{
		Caller:    callerID,
		AccountID: accountID,
		Amount:    req.Amount,
	}); err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return h.GetBalanceHandler(ctx, accountID)
}

func toConfigDTO(config entities.Config) httptransport.ConfigDTO {
	return httptransport.ConfigDTO{
		Slot:                services.ConfigSlot().String(),
		Authority:           config.Authority,
		FeeRecipient:        config.FeeRecipient,
		MinFeeAmount:        config.MinFeeAmount,
		FeePercent:          config.FeePercent,
		PaywallCreationCost: config.PaywallCreationCost,
		CreatedAt:           config.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           config.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toPaywallDTO(slot entities.Slot, paywall entities.Paywall) httptransport.PaywallDTO {
	dto := httptransport.PaywallDTO{
		Slot:        slot.String(),
		PaywallID:   paywall.ID,
		CreatorID:   paywall.CreatorID,
		PriceAmount: paywall.PriceAmount,
		MaxSupply:   paywall.MaxSupply,
		MintedCount: paywall.MintedCount,
		CreatedAt:   paywall.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   paywall.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if remaining, capped := paywall.Remaining(); capped {
		dto.Remaining = &remaining
	}
	return dto
}

func toPaymentDTO(slot entities.Slot, payment entities.Payment) httptransport.PaymentDTO {
	return httptransport.PaymentDTO{
		Slot:          slot.String(),
		CreatorID:     payment.CreatorID,
		PaywallID:     payment.PaywallID,
		PayerID:       payment.PayerID,
		AmountPaid:    payment.AmountPaid,
		FeeAmount:     payment.FeeAmount,
		CreatorAmount: payment.CreatorAmount,
		CreatedAt:     payment.CreatedAt.UTC().Format(time.RFC3339),
	}
}
