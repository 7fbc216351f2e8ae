package services

import (
	"math"
	"testing"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name        string
		price       uint64
		percent     uint64
		minFee      uint64
		wantFee     uint64
		wantCreator uint64
		wantErr     error
	}{
		{name: "minimum fee wins over percentage", price: 1000, percent: 5, minFee: 100, wantFee: 100, wantCreator: 900},
		{name: "percentage wins over minimum fee", price: 10000, percent: 5, minFee: 100, wantFee: 500, wantCreator: 9500},
		{name: "percentage rounds down", price: 999, percent: 10, minFee: 0, wantFee: 99, wantCreator: 900},
		{name: "zero percent zero minimum", price: 1000, percent: 0, minFee: 0, wantFee: 0, wantCreator: 1000},
		{name: "full percentage", price: 1000, percent: 100, minFee: 0, wantFee: 1000, wantCreator: 0},
		{name: "free paywall", price: 0, percent: 20, minFee: 0, wantFee: 0, wantCreator: 0},
		{name: "minimum equals price", price: 50, percent: 0, minFee: 50, wantFee: 50, wantCreator: 0},
		{name: "minimum fee above price", price: 10, percent: 0, minFee: 50, wantErr: domainerrors.ErrNumericalOverflow},
		{name: "price times percent overflows", price: math.MaxUint64, percent: 2, minFee: 0, wantErr: domainerrors.ErrNumericalOverflow},
		{name: "percent above 100", price: 1000, percent: 101, minFee: 0, wantErr: domainerrors.ErrInvalidPercentageFee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := ComputeSplit(tt.price, entities.FeeSchedule{
				FeeRecipient: "treasury",
				MinFeeAmount: tt.minFee,
				FeePercent:   tt.percent,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.price, split.Price)
			assert.Equal(t, tt.wantFee, split.FeeAmount)
			assert.Equal(t, tt.wantCreator, split.CreatorAmount)
		})
	}
}

func TestComputeSplitConservesPrice(t *testing.T) {
	prices := []uint64{0, 1, 7, 99, 100, 101, 12345, 1 << 40, math.MaxUint64 / 100}
	for _, price := range prices {
		for percent := uint64(0); percent <= entities.MaxFeePercent; percent++ {
			for _, minFee := range []uint64{0, 1, 100} {
				split, err := ComputeSplit(price, entities.FeeSchedule{
					FeeRecipient: "treasury",
					MinFeeAmount: minFee,
					FeePercent:   percent,
				})
				if minFee > price {
					require.ErrorIs(t, err, domainerrors.ErrNumericalOverflow)
					continue
				}
				require.NoError(t, err, "price=%d percent=%d min=%d", price, percent, minFee)
				assert.Equal(t, price, split.FeeAmount+split.CreatorAmount)
				assert.GreaterOrEqual(t, split.FeeAmount, minFee)
				assert.LessOrEqual(t, split.FeeAmount, price)
			}
		}
	}
}
