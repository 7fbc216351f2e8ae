package entities

import (
	"strings"
	"time"

	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
)

// Payment is the immutable receipt of one purchase. There is at most one per
// (creator, paywall, payer).
type Payment struct {
	CreatorID     string
	PaywallID     string
	PayerID       string
	AmountPaid    uint64
	FeeAmount     uint64
	CreatorAmount uint64
	CreatedAt     time.Time
}

func NewPayment(paywall Paywall, payerID string, split Split, now time.Time) (Payment, error) {
	payerID = strings.TrimSpace(payerID)
	if payerID == "" {
		return Payment{}, domainerrors.ErrInvalidIdentity
	}
	return Payment{
		CreatorID:     paywall.CreatorID,
		PaywallID:     paywall.ID,
		PayerID:       payerID,
		AmountPaid:    split.Price,
		FeeAmount:     split.FeeAmount,
		CreatorAmount: split.CreatorAmount,
		CreatedAt:     now.UTC(),
	}, nil
}

// Split is the settled division of a price between fee recipient and creator.
type Split struct {
	Price         uint64
	FeeAmount     uint64
	CreatorAmount uint64
}
