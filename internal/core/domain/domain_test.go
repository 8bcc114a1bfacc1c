package domain_test

import (
	"testing"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConversionRequest_Reverse(t *testing.T) {
	down := domain.RoundDown
	req := domain.ConversionRequest{
		SourceCurrency: "EUR",
		TargetCurrency: "USD",
		Discount:       10,
		Anchor:         domain.LegReceived,
		Amount:         decimal.NewFromInt(100),
		Rounding:       &down,
		PaymentType:    domain.PaymentCard,
		DeliveryType:   domain.DeliveryCash,
	}

	reversed := req.Reverse()
	assert.Equal(t, "USD", reversed.SourceCurrency)
	assert.Equal(t, "EUR", reversed.TargetCurrency)
	assert.Equal(t, domain.LegDelivered, reversed.Anchor, "the amount stays on EUR, which is now delivered")
	assert.True(t, req.Amount.Equal(reversed.Amount))
	assert.Nil(t, reversed.Rounding)
	assert.Equal(t, 10, reversed.Discount)
	assert.Equal(t, domain.PaymentCard, reversed.PaymentType)

	assert.Equal(t, domain.LegReceived, reversed.Reverse().Anchor)
	assert.NotNil(t, req.Rounding, "Reverse must not modify the receiver")
}

func TestWorkcenter_Accepts(t *testing.T) {
	w := domain.Workcenter{AcceptedCurrencies: []string{"EUR", "USD"}}
	assert.True(t, w.Accepts("USD"))
	assert.False(t, w.Accepts("GBP"))
	assert.False(t, domain.Workcenter{}.Accepts("EUR"))
}

func TestWorkSession_Reconciled(t *testing.T) {
	tests := []struct {
		name    string
		session domain.WorkSession
		want    bool
	}{
		{name: "not started", session: domain.WorkSession{}, want: false},
		{name: "started only", session: domain.WorkSession{ChecksStarted: true}, want: false},
		{name: "started and ended", session: domain.WorkSession{ChecksStarted: true, ChecksEnded: true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Reconciled())
		})
	}
	assert.True(t, domain.WorkSession{Status: domain.SessionOpen}.IsOpen())
	assert.False(t, domain.WorkSession{Status: domain.SessionClosed}.IsOpen())
}

func TestTransferLine_IsPending(t *testing.T) {
	tests := []struct {
		name string
		line domain.TransferLine
		want bool
	}{
		{name: "sent and pending", line: domain.TransferLine{StatusSource: domain.SourceSent, StatusDestination: domain.DestinationPending}, want: true},
		{name: "received", line: domain.TransferLine{StatusSource: domain.SourceSent, StatusDestination: domain.DestinationReceived}, want: false},
		{name: "rejected", line: domain.TransferLine{StatusSource: domain.SourceSent, StatusDestination: domain.DestinationCancelled}, want: false},
		{name: "cancelled by sender", line: domain.TransferLine{StatusSource: domain.SourceCancelled, StatusDestination: domain.DestinationCancelled}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.IsPending())
		})
	}
}

func TestCurrency_DenominationValues(t *testing.T) {
	c := domain.Currency{Denominations: []domain.Denomination{
		{Kind: domain.DenominationBill, Value: decimal.NewFromInt(10)},
		{Kind: domain.DenominationCoin, Value: decimal.RequireFromString("0.5")},
	}}
	values := c.DenominationValues()
	assert.Len(t, values, 2)
	assert.True(t, values[1].Equal(decimal.RequireFromString("0.5")))

	assert.False(t, domain.BalanceCheck{}.HasShrinkage())
	assert.True(t, domain.BalanceCheck{RecordedShrinkage: decimal.NewFromInt(-5)}.HasShrinkage())
}
