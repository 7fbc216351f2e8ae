package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	paywallledger "paywall/contexts/finance-core/paywall-ledger"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	paywallhttp "paywall/contexts/finance-core/paywall-ledger/transport/http"
	_ "paywall/internal/platform/httpserver/docs"

	solana "github.com/gagliardetto/solana-go"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	readHeaderTimeout = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

type Options struct {
	EnableSwagger  bool
	MetricsHandler http.Handler
}

type Server struct {
	mux     *http.ServeMux
	http    *http.Server
	logger  *slog.Logger
	addr    string
	ledger  paywallledger.Module
	options Options
}

func New(
	ledger paywallledger.Module,
	logger *slog.Logger,
	addr string,
	options Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		ledger:  ledger,
		options: options,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	if s.options.EnableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}
	if s.options.MetricsHandler != nil {
		s.mux.Handle("GET /metrics", s.options.MetricsHandler)
	}

	s.mux.HandleFunc("POST /v1/paywall-config", s.handleInitializeConfig)
	s.mux.HandleFunc("GET /v1/paywall-config", s.handleGetConfig)
	s.mux.HandleFunc("PUT /v1/paywall-config/fees", s.handleUpdateFees)
	s.mux.HandleFunc("PUT /v1/paywall-config/authority", s.handleUpdateAuthority)

	s.mux.HandleFunc("POST /v1/paywalls", s.handleCreatePaywall)
	s.mux.HandleFunc("GET /v1/creators/{creator_id}/paywalls", s.handleListPaywalls)
	s.mux.HandleFunc("GET /v1/creators/{creator_id}/paywalls/{paywall_id}", s.handleGetPaywall)
	s.mux.HandleFunc("PUT /v1/creators/{creator_id}/paywalls/{paywall_id}", s.handleUpdatePaywall)
	s.mux.HandleFunc("POST /v1/creators/{creator_id}/paywalls/{paywall_id}/purchase", s.handlePurchasePaywall)
	s.mux.HandleFunc("GET /v1/creators/{creator_id}/paywalls/{paywall_id}/payments/{payer_id}", s.handleGetPayment)

	s.mux.HandleFunc("GET /v1/accounts/{account_id}/balance", s.handleGetBalance)
	s.mux.HandleFunc("POST /v1/accounts/{account_id}/credit", s.handleCreditAccount)
}

func (s *Server) handleInitializeConfig(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req paywallhttp.InitializeConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireIdentities(w, req.FeeRecipient) {
		return
	}

	resp, err := s.ledger.Handler.InitializeConfigHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.GetConfigHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateFees(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req paywallhttp.UpdateFeesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireIdentities(w, req.FeeRecipient) {
		return
	}

	resp, err := s.ledger.Handler.UpdateFeesHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAuthority(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req paywallhttp.UpdateAuthorityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireIdentities(w, req.NewAuthority) {
		return
	}

	resp, err := s.ledger.Handler.UpdateAuthorityHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePaywall(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req paywallhttp.CreatePaywallRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.ledger.Handler.CreatePaywallHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPaywalls(w http.ResponseWriter, r *http.Request) {
	creatorID := r.PathValue("creator_id")
	if !requireIdentities(w, creatorID) {
		return
	}
	query := r.URL.Query()
	req := paywallhttp.ListPaywallsRequest{CreatorID: creatorID}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeLedgerError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		req.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			writeLedgerError(w, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		req.Offset = offset
	}

	resp, err := s.ledger.Handler.ListPaywallsHandler(r.Context(), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPaywall(w http.ResponseWriter, r *http.Request) {
	creatorID := r.PathValue("creator_id")
	if !requireIdentities(w, creatorID) {
		return
	}
	resp, err := s.ledger.Handler.GetPaywallHandler(r.Context(), creatorID, r.PathValue("paywall_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePaywall(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	creatorID := r.PathValue("creator_id")
	if !requireIdentities(w, creatorID) {
		return
	}
	var req paywallhttp.UpdatePaywallRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.ledger.Handler.UpdatePaywallHandler(r.Context(), callerID, creatorID, r.PathValue("paywall_id"), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePurchasePaywall(w http.ResponseWriter, r *http.Request) {
	payerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	creatorID := r.PathValue("creator_id")
	if !requireIdentities(w, creatorID) {
		return
	}

	resp, err := s.ledger.Handler.PurchasePaywallHandler(r.Context(), payerID, creatorID, r.PathValue("paywall_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	creatorID := r.PathValue("creator_id")
	payerID := r.PathValue("payer_id")
	if !requireIdentities(w, creatorID, payerID) {
		return
	}
	resp, err := s.ledger.Handler.GetPaymentHandler(r.Context(), creatorID, r.PathValue("paywall_id"), payerID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	if !requireIdentities(w, accountID) {
		return
	}
	resp, err := s.ledger.Handler.GetBalanceHandler(r.Context(), accountID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreditAccount(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	accountID := r.PathValue("account_id")
	if !requireIdentities(w, accountID) {
		return
	}
	var req paywallhttp.CreditAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.ledger.Handler.CreditAccountHandler(r.Context(), callerID, accountID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireCaller returns the authenticated caller from X-User-Id. Signature
// checks happen upstream; only the key encoding is validated here.
func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	if !requireIdentities(w, userID) {
		return "", false
	}
	return userID, true
}

func requireIdentities(w http.ResponseWriter, identities ...string) bool {
	for _, identity := range identities {
		if !isIdentity(identity) {
			writeLedgerError(w, http.StatusBadRequest, "invalid_identity", "identity must be a base58 public key")
			return false
		}
	}
	return true
}

func isIdentity(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	_, err := solana.PublicKeyFromBase58(raw)
	return err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidPaywallId):
		writeLedgerError(w, http.StatusBadRequest, "invalid_paywall_id", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidPercentageFee):
		writeLedgerError(w, http.StatusBadRequest, "invalid_percentage_fee", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidIdentity):
		writeLedgerError(w, http.StatusBadRequest, "invalid_identity", err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		writeLedgerError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domainerrors.ErrSlotAlreadyExists):
		writeLedgerError(w, http.StatusConflict, "slot_already_exists", err.Error())
	case errors.Is(err, domainerrors.ErrSlotNotFound):
		writeLedgerError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrSupplyExhausted):
		writeLedgerError(w, http.StatusConflict, "supply_exhausted", err.Error())
	case errors.Is(err, domainerrors.ErrNumericalOverflow):
		writeLedgerError(w, http.StatusUnprocessableEntity, "numerical_overflow", err.Error())
	case errors.Is(err, domainerrors.ErrInsufficientFunds):
		writeLedgerError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, paywallhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
