package conversion

import (
	"testing"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_EURUSDNoDiscount(t *testing.T) {
	rates, err := DefaultRatePolicy().Compute(dec("1.10"), 0)
	require.NoError(t, err)

	assert.True(t, dec("1.54").Equal(rates.SellRate), "sell rate should be r*m, got %s", rates.SellRate)
	assert.True(t, dec("0.785714").Equal(rates.BuyRate), "buy rate should be r/m, got %s", rates.BuyRate)
	assert.True(t, dec("1.10").Equal(rates.BaseRate))
}

func TestCompute_OrderingAndMonotonicity(t *testing.T) {
	policy := DefaultRatePolicy()
	for _, official := range []string{"0.0061", "0.85", "1", "1.10", "17.3921", "158.44"} {
		r := dec(official)
		prev, err := policy.Compute(r, 0)
		require.NoError(t, err)

		for d := 0; d <= policy.MaxDiscount; d += policy.DiscountStep {
			rates, err := policy.Compute(r, d)
			require.NoError(t, err)

			assert.True(t, rates.BuyRate.LessThanOrEqual(r), "buy <= r for r=%s d=%d", official, d)
			assert.True(t, rates.SellRate.GreaterThanOrEqual(r), "sell >= r for r=%s d=%d", official, d)
			assert.True(t, rates.BuyRate.GreaterThanOrEqual(prev.BuyRate), "buy moves toward r for r=%s d=%d", official, d)
			assert.True(t, rates.SellRate.LessThanOrEqual(prev.SellRate), "sell moves toward r for r=%s d=%d", official, d)
			prev = rates
		}
	}
}

func TestCompute_Validation(t *testing.T) {
	policy := DefaultRatePolicy()

	_, err := policy.Compute(dec("1.10"), 7)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "discount off the tier grid")

	_, err = policy.Compute(dec("1.10"), 100)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "100% discount removes the spread")

	_, err = policy.Compute(dec("1.10"), -5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = policy.Compute(decimal.Zero, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	flat := policy
	flat.Margin = decimal.NewFromInt(1)
	_, err = flat.Compute(dec("1.10"), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLegs_DeskKeepsSpread(t *testing.T) {
	rates, err := DefaultRatePolicy().Compute(dec("1.10"), 0)
	require.NoError(t, err)

	// Customer pays 100 EUR for USD.
	forward, backward := Legs(rates, true)
	assert.True(t, dec("78.57").Equal(forward(dec("100"))))
	assert.True(t, dec("25.45").Equal(backward(dec("20"))))

	// Customer pays 100 USD for EUR.
	forward, backward = Legs(rates, false)
	assert.True(t, dec("64.94").Equal(forward(dec("100"))))
	assert.True(t, dec("154").Equal(backward(dec("100"))))
}
