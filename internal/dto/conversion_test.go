package dto_test

import (
	"testing"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionLineRequest_ToDomain(t *testing.T) {
	up := "up"
	tests := []struct {
		name         string
		line         dto.ConversionLineRequest
		wantSource   string
		wantAnchor   domain.Leg
		wantRounding *domain.RoundingDirection
		wantPayment  domain.PaymentType
	}{
		{
			name:        "defaults to cash without rounding",
			line:        dto.ConversionLineRequest{SourceCurrency: "EUR", TargetCurrency: "USD", Anchor: "received", Amount: decimal.NewFromInt(100)},
			wantSource:  "EUR",
			wantAnchor:  domain.LegReceived,
			wantPayment: domain.PaymentCash,
		},
		{
			name:         "rounding choice is kept",
			line:         dto.ConversionLineRequest{SourceCurrency: "EUR", TargetCurrency: "USD", Anchor: "delivered", Amount: decimal.NewFromInt(23), Rounding: &up, PaymentType: "card"},
			wantSource:   "EUR",
			wantAnchor:   domain.LegDelivered,
			wantRounding: roundingPtr(domain.RoundUp),
			wantPayment:  domain.PaymentCard,
		},
		{
			name:         "reversed line keeps the rounding choice",
			line:         dto.ConversionLineRequest{SourceCurrency: "EUR", TargetCurrency: "USD", Anchor: "received", Amount: decimal.NewFromInt(23), Rounding: &up, Reverse: true},
			wantSource:   "USD",
			wantAnchor:   domain.LegDelivered,
			wantRounding: roundingPtr(domain.RoundUp),
			wantPayment:  domain.PaymentCash,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.line.ToDomain()
			assert.Equal(t, tt.wantSource, req.SourceCurrency)
			assert.Equal(t, tt.wantAnchor, req.Anchor)
			assert.Equal(t, tt.wantPayment, req.PaymentType)
			assert.True(t, tt.line.Amount.Equal(req.Amount))
			if tt.wantRounding == nil {
				assert.Nil(t, req.Rounding)
				return
			}
			require.NotNil(t, req.Rounding)
			assert.Equal(t, *tt.wantRounding, *req.Rounding)
		})
	}
}

func roundingPtr(d domain.RoundingDirection) *domain.RoundingDirection {
	return &d
}
