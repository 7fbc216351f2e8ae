package errors

import "errors"

var (
	ErrInvalidPaywallId     = errors.New("paywall id must be between 1 and 50 bytes")
	ErrInvalidPercentageFee = errors.New("fee percent must not exceed 100")
	ErrInvalidIdentity      = errors.New("identity is required")
	ErrUnauthorized         = errors.New("caller is not allowed to mutate this record")
	ErrSlotAlreadyExists    = errors.New("slot already exists")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrSupplyExhausted      = errors.New("paywall max supply reached")
	ErrNumericalOverflow    = errors.New("numerical overflow")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)
