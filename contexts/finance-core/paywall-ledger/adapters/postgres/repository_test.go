package postgresadapter

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapWriteErrorTranslatesDriverCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, mapWriteError(unique), domainerrors.ErrSlotAlreadyExists)

	outOfRange := &pgconn.PgError{Code: "22003"}
	assert.ErrorIs(t, mapWriteError(outOfRange), domainerrors.ErrNumericalOverflow)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapWriteError(other))
	assert.NoError(t, mapWriteError(nil))
}

func TestMapNotFound(t *testing.T) {
	assert.ErrorIs(t, mapNotFound(gorm.ErrRecordNotFound), domainerrors.ErrSlotNotFound)
	other := errors.New("timeout")
	assert.Equal(t, other, mapNotFound(other))
}

func TestModelsRejectAmountsAboveBigint(t *testing.T) {
	_, err := paywallModelFromEntity(services.PaywallSlot("alice", "x"), entities.Paywall{ID: "x", PriceAmount: math.MaxUint64})
	assert.ErrorIs(t, err, domainerrors.ErrNumericalOverflow)

	_, err = configModelFromEntity(services.ConfigSlot(), entities.Config{MinFeeAmount: math.MaxInt64 + 1})
	assert.ErrorIs(t, err, domainerrors.ErrNumericalOverflow)
}

func TestPaywallModelRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	slot := services.PaywallSlot("alice", "x")
	paywall := entities.Paywall{
		ID:          "x",
		CreatorID:   "alice",
		PriceAmount: 1000,
		MaxSupply:   3,
		MintedCount: 2,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	model, err := paywallModelFromEntity(slot, paywall)
	require.NoError(t, err)
	assert.Equal(t, slot.String(), model.Slot)
	assert.Equal(t, paywall, model.toEntity())
}
