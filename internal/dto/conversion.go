package dto

import (
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionLineRequest is one requested exchange line.
type ConversionLineRequest struct {
	SourceCurrency string          `json:"sourceCurrency" binding:"required,uppercase,len=3"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,uppercase,len=3"`
	Discount       int             `json:"discount" binding:"discount"`
	Anchor         string          `json:"anchor" binding:"required,oneof=received delivered"`
	Amount         decimal.Decimal `json:"amount"`
	Rounding       *string         `json:"rounding" binding:"omitempty,oneof=down up"`
	PaymentType    string          `json:"paymentType" binding:"omitempty,oneof=cash card"`
	DeliveryType   string          `json:"deliveryType" binding:"omitempty,oneof=cash"`
	// Reverse swaps source and target, keeping the amount on its currency.
	Reverse bool `json:"reverse"`
}

// ToDomain converts the line into a conversion request, defaulting both legs to cash.
func (r ConversionLineRequest) ToDomain() domain.ConversionRequest {
	req := domain.ConversionRequest{
		SourceCurrency: r.SourceCurrency,
		TargetCurrency: r.TargetCurrency,
		Discount:       r.Discount,
		Anchor:         domain.Leg(r.Anchor),
		Amount:         r.Amount,
		PaymentType:    domain.PaymentCash,
		DeliveryType:   domain.DeliveryCash,
	}
	if r.PaymentType != "" {
		req.PaymentType = domain.PaymentType(r.PaymentType)
	}
	if r.DeliveryType != "" {
		req.DeliveryType = domain.DeliveryType(r.DeliveryType)
	}
	if r.Reverse {
		req = req.Reverse()
	}
	// Reverse drops a previous choice; the one sent with the line applies to the reversed line.
	if r.Rounding != nil {
		dir := domain.RoundingDirection(*r.Rounding)
		req.Rounding = &dir
	}
	return req
}
