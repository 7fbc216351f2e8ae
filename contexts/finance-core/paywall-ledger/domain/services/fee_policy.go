package services

import (
	"math/bits"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
)

// ComputeSplit divides price between the fee recipient and the creator.
//
// The percentage fee is floor(price*percent/100). The minimum fee always wins
// when larger, even at zero percent. A minimum fee above the price is not
// clamped: the split fails with ErrNumericalOverflow.
func ComputeSplit(price uint64, schedule entities.FeeSchedule) (entities.Split, error) {
	if schedule.FeePercent > entities.MaxFeePercent {
		return entities.Split{}, domainerrors.ErrInvalidPercentageFee
	}

	hi, lo := bits.Mul64(price, schedule.FeePercent)
	if hi != 0 {
		return entities.Split{}, domainerrors.ErrNumericalOverflow
	}
	fee := lo / 100
	if fee < schedule.MinFeeAmount {
		fee = schedule.MinFeeAmount
	}

	creatorAmount, borrow := bits.Sub64(price, fee, 0)
	if borrow != 0 {
		return entities.Split{}, domainerrors.ErrNumericalOverflow
	}

	return entities.Split{
		Price:         price,
		FeeAmount:     fee,
		CreatorAmount: creatorAmount,
	}, nil
}
