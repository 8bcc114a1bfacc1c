package conversion

import (
	"testing"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(vs ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(vs))
	for _, v := range vs {
		out = append(out, dec(v))
	}
	return out
}

func TestFits_FiveAndTenDown(t *testing.T) {
	got, unchanged, err := Fits(values("5", "10"), dec("23"), domain.RoundDown, DefaultTolerance)
	require.NoError(t, err)
	assert.False(t, unchanged)
	assert.True(t, dec("20").Equal(got), "got %s", got)
}

func TestFits_FiveAndTenUp(t *testing.T) {
	got, unchanged, err := Fits(values("5", "10"), dec("23"), domain.RoundUp, DefaultTolerance)
	require.NoError(t, err)
	assert.False(t, unchanged)
	assert.True(t, dec("25").Equal(got), "got %s", got)
}

func TestFits_MinimumAdjustment(t *testing.T) {
	tests := []struct {
		name      string
		denoms    []decimal.Decimal
		amount    string
		direction domain.RoundingDirection
		want      string
	}{
		{"coins pick the smallest remainder", values("0.5", "2", "20"), "47.30", domain.RoundDown, "47.00"},
		{"bills only", values("20", "50"), "130", domain.RoundDown, "120"},
		{"up to next bill", values("20", "50"), "130", domain.RoundUp, "140"},
		{"fractional amounts", values("0.05", "1"), "3.47", domain.RoundDown, "3.45"},
		{"fractional up", values("0.05", "1"), "3.47", domain.RoundUp, "3.50"},
		{"single odd denomination", values("3"), "10", domain.RoundUp, "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := dec(tt.amount)

			var best decimal.Decimal
			for i, v := range tt.denoms {
				adj := amount.Mod(v)
				if tt.direction == domain.RoundUp {
					adj = v.Sub(adj)
				}
				if i == 0 || adj.LessThan(best) {
					best = adj
				}
			}

			got, unchanged, err := Fits(tt.denoms, amount, tt.direction, DefaultTolerance)
			require.NoError(t, err)
			assert.False(t, unchanged)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
			assert.True(t, got.Sub(amount).Abs().Equal(best), "difference must equal the minimum adjustment")
		})
	}
}

func TestFits_Idempotent(t *testing.T) {
	denoms := values("0.5", "5", "10", "50")
	for _, direction := range []domain.RoundingDirection{domain.RoundDown, domain.RoundUp} {
		for _, raw := range []string{"23.30", "7.77", "101.01", "0.90"} {
			first, _, err := Fits(denoms, dec(raw), direction, DefaultTolerance)
			require.NoError(t, err)

			second, unchanged, err := Fits(denoms, first, direction, DefaultTolerance)
			require.NoError(t, err)
			assert.True(t, unchanged, "%s %s", raw, direction)
			assert.True(t, first.Equal(second))
		}
	}
}

func TestFits_ExactRemainderIsUnchanged(t *testing.T) {
	got, unchanged, err := Fits(values("7", "5"), dec("35"), domain.RoundDown, DefaultTolerance)
	require.NoError(t, err)
	assert.True(t, unchanged)
	assert.True(t, dec("35").Equal(got))
}

func TestFits_BelowToleranceIsUnchanged(t *testing.T) {
	got, unchanged, err := Fits(values("1"), dec("12.01"), domain.RoundDown, DefaultTolerance)
	require.NoError(t, err)
	assert.True(t, unchanged)
	assert.True(t, dec("12.01").Equal(got))

	got, unchanged, err = Fits(values("1"), dec("12.01"), domain.RoundDown, decimal.Zero)
	require.NoError(t, err)
	assert.False(t, unchanged)
	assert.True(t, dec("12").Equal(got))
}

func TestFits_EmptyCatalog(t *testing.T) {
	_, _, err := Fits(nil, dec("10"), domain.RoundDown, DefaultTolerance)
	assert.ErrorIs(t, err, apperrors.ErrNoDenominations)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
