package conversion

import (
	"fmt"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the fixed-point precision of every cash amount.
const AmountPlaces = 2

// RatePlaces is the precision rates are quoted with.
const RatePlaces = 6

var hundred = decimal.NewFromInt(100)

// RoundAmount rounds half-up to two decimals. Amounts are never negative, so rounding
// half away from zero is the same as half-up.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// RatePolicy holds the commercial margin and the discount tiers a desk may apply.
type RatePolicy struct {
	Margin       decimal.Decimal
	MaxDiscount  int
	DiscountStep int
}

// DefaultRatePolicy is a 1.4 margin with discounts from 0 to 95 in steps of 5.
func DefaultRatePolicy() RatePolicy {
	return RatePolicy{
		Margin:       decimal.RequireFromString("1.4"),
		MaxDiscount:  95,
		DiscountStep: 5,
	}
}

// ValidateDiscount checks that the discount is one of the offered tiers.
func (p RatePolicy) ValidateDiscount(discount int) error {
	if discount < 0 || discount > p.MaxDiscount {
		return fmt.Errorf("%w: discount must be between 0 and %d", apperrors.ErrValidation, p.MaxDiscount)
	}
	if p.DiscountStep > 0 && discount%p.DiscountStep != 0 {
		return fmt.Errorf("%w: discount must be a multiple of %d", apperrors.ErrValidation, p.DiscountStep)
	}
	return nil
}

// Compute derives buy and sell rates from the official rate of the non-base currency.
//
//	sell = r + (r*m - r) * (100-d)/100
//	buy  = r - (r - r/m) * (100-d)/100
func (p RatePolicy) Compute(official decimal.Decimal, discount int) (domain.Rates, error) {
	if !p.Margin.GreaterThan(decimal.NewFromInt(1)) {
		return domain.Rates{}, fmt.Errorf("%w: commercial margin must be greater than 1", apperrors.ErrValidation)
	}
	if !official.IsPositive() {
		return domain.Rates{}, fmt.Errorf("%w: official rate must be positive", apperrors.ErrValidation)
	}
	if err := p.ValidateDiscount(discount); err != nil {
		return domain.Rates{}, err
	}

	remaining := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)

	sellFull := official.Mul(p.Margin)
	sell := official.Add(sellFull.Sub(official).Mul(remaining))

	buyFull := official.Div(p.Margin)
	buy := official.Sub(official.Sub(buyFull).Mul(remaining))

	return domain.Rates{
		BuyRate:  buy.Round(RatePlaces),
		SellRate: sell.Round(RatePlaces),
		BaseRate: official,
	}, nil
}

// Legs returns the functions converting a received amount into a delivered amount and back.
// When the customer pays in the base currency the buy rate applies, otherwise the sell rate.
// Either way the desk keeps the spread.
func Legs(rates domain.Rates, sourceIsBase bool) (forward, backward func(decimal.Decimal) decimal.Decimal) {
	if sourceIsBase {
		forward = func(received decimal.Decimal) decimal.Decimal {
			return RoundAmount(received.Mul(rates.BuyRate))
		}
		backward = func(delivered decimal.Decimal) decimal.Decimal {
			return RoundAmount(delivered.Div(rates.BuyRate))
		}
		return forward, backward
	}
	forward = func(received decimal.Decimal) decimal.Decimal {
		return RoundAmount(received.Div(rates.SellRate))
	}
	backward = func(delivered decimal.Decimal) decimal.Decimal {
		return RoundAmount(delivered.Mul(rates.SellRate))
	}
	return forward, backward
}
