package application

import (
	"errors"
	"log/slog"

	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
)

// ModuleName is the value of the "module" attribute on every log line.
const ModuleName = "finance-core/paywall-ledger"

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

var domainErrors = []error{
	domainerrors.ErrInvalidPaywallId,
	domainerrors.ErrInvalidPercentageFee,
	domainerrors.ErrInvalidIdentity,
	domainerrors.ErrUnauthorized,
	domainerrors.ErrSlotAlreadyExists,
	domainerrors.ErrSlotNotFound,
	domainerrors.ErrSupplyExhausted,
	domainerrors.ErrNumericalOverflow,
	domainerrors.ErrInsufficientFunds,
}

// IsDomainError reports whether err is one of the ledger's terminal rejections
// rather than an infrastructure failure.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// LogFailure logs a rejected operation at warn and an infrastructure failure
// at error.
func LogFailure(logger *slog.Logger, msg string, event string, err error, attrs ...any) {
	args := append([]any{
		"event", event,
		"module", ModuleName,
		"layer", "application",
		"error", err.Error(),
	}, attrs...)
	if IsDomainError(err) {
		logger.Warn(msg, args...)
		return
	}
	logger.Error(msg, args...)
}
