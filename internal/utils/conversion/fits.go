package conversion

import (
	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTolerance is the smallest adjustment worth applying.
var DefaultTolerance = decimal.RequireFromString("0.02")

// Fits makes amount payable with the given denominations.
//
// If any denomination divides the amount exactly, the amount is returned unchanged.
// Otherwise the smallest per-denomination adjustment in the requested direction is applied.
// Adjustments below tolerance are ignored so currencies without fine change do not oscillate.
func Fits(denominations []decimal.Decimal, amount decimal.Decimal, direction domain.RoundingDirection, tolerance decimal.Decimal) (decimal.Decimal, bool, error) {
	if len(denominations) == 0 {
		return amount, false, apperrors.ErrNoDenominations
	}
	amount = RoundAmount(amount)

	var best decimal.Decimal
	found := false
	for _, v := range denominations {
		if !v.IsPositive() {
			continue
		}
		remainder := amount.Mod(v)
		if remainder.IsZero() {
			return amount, true, nil
		}
		adjustment := remainder
		if direction == domain.RoundUp {
			adjustment = v.Sub(remainder)
		}
		if !found || adjustment.LessThan(best) {
			best = adjustment
			found = true
		}
	}
	if !found {
		return amount, false, apperrors.ErrNoDenominations
	}

	if best.LessThan(tolerance) {
		return amount, true, nil
	}
	if direction == domain.RoundUp {
		return RoundAmount(amount.Add(best)), false, nil
	}
	return RoundAmount(amount.Sub(best)), false, nil
}
