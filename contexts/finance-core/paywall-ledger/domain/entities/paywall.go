package entities

import (
	"math"
	"strings"
	"time"

	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
)

const (
	MinPaywallIDLength = 1
	MaxPaywallIDLength = 50
)

// Paywall is a creator-owned access gate. MaxSupply of zero means unlimited.
type Paywall struct {
	ID          string
	CreatorID   string
	PriceAmount uint64
	MaxSupply   uint64
	MintedCount uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidatePaywallID checks the byte length of the id.
func ValidatePaywallID(paywallID string) error {
	if len(paywallID) < MinPaywallIDLength || len(paywallID) > MaxPaywallIDLength {
		return domainerrors.ErrInvalidPaywallId
	}
	return nil
}

func NewPaywall(creatorID string, paywallID string, maxSupply uint64, priceAmount uint64, now time.Time) (Paywall, error) {
	if err := ValidatePaywallID(paywallID); err != nil {
		return Paywall{}, err
	}
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return Paywall{}, domainerrors.ErrInvalidIdentity
	}
	return Paywall{
		ID:          paywallID,
		CreatorID:   creatorID,
		PriceAmount: priceAmount,
		MaxSupply:   maxSupply,
		MintedCount: 0,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (p Paywall) Authorize(caller string) error {
	caller = strings.TrimSpace(caller)
	if caller == "" || caller != p.CreatorID {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

// WithTerms overwrites price and supply cap. MintedCount is left untouched, so
// a cap below the current count blocks every later mint.
func (p Paywall) WithTerms(caller string, maxSupply uint64, priceAmount uint64, now time.Time) (Paywall, error) {
	if err := p.Authorize(caller); err != nil {
		return Paywall{}, err
	}
	p.MaxSupply = maxSupply
	p.PriceAmount = priceAmount
	p.UpdatedAt = now.UTC()
	return p, nil
}

// Mint returns a copy with MintedCount incremented. The receiver is not
// modified, so a rejected mint leaves no trace.
func (p Paywall) Mint(now time.Time) (Paywall, error) {
	if p.MintedCount == math.MaxUint64 {
		return Paywall{}, domainerrors.ErrNumericalOverflow
	}
	next := p.MintedCount + 1
	if p.MaxSupply != 0 && next > p.MaxSupply {
		return Paywall{}, domainerrors.ErrSupplyExhausted
	}
	p.MintedCount = next
	p.UpdatedAt = now.UTC()
	return p, nil
}

func (p Paywall) Unlimited() bool {
	return p.MaxSupply == 0
}

// Remaining reports how many mints are left; ok is false for unlimited paywalls.
func (p Paywall) Remaining() (remaining uint64, ok bool) {
	if p.Unlimited() {
		return 0, false
	}
	if p.MintedCount >= p.MaxSupply {
		return 0, true
	}
	return p.MaxSupply - p.MintedCount, true
}
