package entities

import (
	"strings"
	"time"

	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
)

// MaxFeePercent bounds Config.FeePercent.
const MaxFeePercent = 100

// Config is the deployment-wide fee policy. Only Authority may change it.
type Config struct {
	Authority           string
	FeeRecipient        string
	MinFeeAmount        uint64
	FeePercent          uint64
	PaywallCreationCost uint64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FeeSchedule is the mutable subset of Config written by UpdateFees.
type FeeSchedule struct {
	FeeRecipient        string
	MinFeeAmount        uint64
	FeePercent          uint64
	PaywallCreationCost uint64
}

func NewConfig(authority string, schedule FeeSchedule, now time.Time) (Config, error) {
	authority = strings.TrimSpace(authority)
	schedule = schedule.normalized()
	if authority == "" {
		return Config{}, domainerrors.ErrInvalidIdentity
	}
	if err := schedule.Validate(); err != nil {
		return Config{}, err
	}
	return Config{
		Authority:           authority,
		FeeRecipient:        schedule.FeeRecipient,
		MinFeeAmount:        schedule.MinFeeAmount,
		FeePercent:          schedule.FeePercent,
		PaywallCreationCost: schedule.PaywallCreationCost,
		CreatedAt:           now.UTC(),
		UpdatedAt:           now.UTC(),
	}, nil
}

func (s FeeSchedule) normalized() FeeSchedule {
	s.FeeRecipient = strings.TrimSpace(s.FeeRecipient)
	return s
}

func (s FeeSchedule) Validate() error {
	if strings.TrimSpace(s.FeeRecipient) == "" {
		return domainerrors.ErrInvalidIdentity
	}
	if s.FeePercent > MaxFeePercent {
		return domainerrors.ErrInvalidPercentageFee
	}
	return nil
}

// Authorize rejects any caller other than the current authority.
func (c Config) Authorize(caller string) error {
	caller = strings.TrimSpace(caller)
	if caller == "" || caller != c.Authority {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

// WithFees overwrites all four fee fields together. Authority is checked
// before the schedule is validated.
func (c Config) WithFees(caller string, schedule FeeSchedule, now time.Time) (Config, error) {
	if err := c.Authorize(caller); err != nil {
		return Config{}, err
	}
	schedule = schedule.normalized()
	if err := schedule.Validate(); err != nil {
		return Config{}, err
	}
	c.FeeRecipient = schedule.FeeRecipient
	c.MinFeeAmount = schedule.MinFeeAmount
	c.FeePercent = schedule.FeePercent
	c.PaywallCreationCost = schedule.PaywallCreationCost
	c.UpdatedAt = now.UTC()
	return c, nil
}

func (c Config) WithAuthority(caller string, newAuthority string, now time.Time) (Config, error) {
	if err := c.Authorize(caller); err != nil {
		return Config{}, err
	}
	newAuthority = strings.TrimSpace(newAuthority)
	if newAuthority == "" {
		return Config{}, domainerrors.ErrInvalidIdentity
	}
	c.Authority = newAuthority
	c.UpdatedAt = now.UTC()
	return c, nil
}

func (c Config) Schedule() FeeSchedule {
	return FeeSchedule{
		FeeRecipient:        c.FeeRecipient,
		MinFeeAmount:        c.MinFeeAmount,
		FeePercent:          c.FeePercent,
		PaywallCreationCost: c.PaywallCreationCost,
	}
}
