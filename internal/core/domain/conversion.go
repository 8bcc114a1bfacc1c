package domain

import "github.com/shopspring/decimal"

// Leg identifies one side of a conversion from the desk's point of view.
type Leg string

const (
	LegReceived  Leg = "received"  // amount the customer hands over, in the source currency
	LegDelivered Leg = "delivered" // amount the desk pays out, in the target currency
)

// RoundingDirection selects whether non-payable amounts are adjusted down or up.
type RoundingDirection string

const (
	RoundDown RoundingDirection = "down"
	RoundUp   RoundingDirection = "up"
)

// PaymentType is how the customer pays the received leg.
type PaymentType string

const (
	PaymentCash PaymentType = "cash"
	PaymentCard PaymentType = "card"
)

// DeliveryType is how the desk pays out the delivered leg.
type DeliveryType string

const (
	DeliveryCash DeliveryType = "cash"
)

// Rates holds the three rates quoted for a base-anchored pair.
type Rates struct {
	BuyRate  decimal.Decimal `json:"buyRate"`
	SellRate decimal.Decimal `json:"sellRate"`
	BaseRate decimal.Decimal `json:"baseRate"`
}

// RateQuote is a priced pair with the side that holds the base currency.
type RateQuote struct {
	SourceCurrency  string `json:"sourceCurrency"`
	TargetCurrency  string `json:"targetCurrency"`
	ForeignCurrency string `json:"foreignCurrency"`
	SourceIsBase    bool   `json:"sourceIsBase"`
	Discount        int    `json:"discount"`
	Rates
}

// ConversionRequest is one requested exchange line. It is not persisted.
type ConversionRequest struct {
	SourceCurrency string             `json:"sourceCurrency"`
	TargetCurrency string             `json:"targetCurrency"`
	Discount       int                `json:"discount"`
	Anchor         Leg                `json:"anchor"`
	Amount         decimal.Decimal    `json:"amount"`
	Rounding       *RoundingDirection `json:"rounding"`
	PaymentType    PaymentType        `json:"paymentType"`
	DeliveryType   DeliveryType       `json:"deliveryType"`
}

// Reverse swaps the currencies and keeps the amount on its currency, which moves it to the other leg.
func (r ConversionRequest) Reverse() ConversionRequest {
	reversed := r
	reversed.SourceCurrency, reversed.TargetCurrency = r.TargetCurrency, r.SourceCurrency
	if r.Anchor == LegReceived {
		reversed.Anchor = LegDelivered
	} else {
		reversed.Anchor = LegReceived
	}
	reversed.Rounding = nil
	return reversed
}

// ConversionCandidate is one payable (received, delivered) pair.
type ConversionCandidate struct {
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	AmountDelivered decimal.Decimal `json:"amountDelivered"`
}

// Availability is an advisory snapshot of the desk balance for the delivered currency.
type Availability struct {
	DeskID    string          `json:"deskID"`
	Balance   decimal.Decimal `json:"balance"`
	Available bool            `json:"available"`
}

// ConversionResult is a resolved conversion, or the two alternatives the caller must pick from.
type ConversionResult struct {
	SourceCurrency  string               `json:"sourceCurrency"`
	TargetCurrency  string               `json:"targetCurrency"`
	Discount        int                  `json:"discount"`
	Anchor          Leg                  `json:"anchor"`
	AmountReceived  decimal.Decimal      `json:"amountReceived"`
	AmountDelivered decimal.Decimal      `json:"amountDelivered"`
	Rounding        RoundingDirection    `json:"rounding"`
	NeedsChoice     bool                 `json:"needsChoice"`
	// Narrowed marks a result resolved in the only direction that converged.
	Narrowed        bool                 `json:"narrowed,omitempty"`
	Under           *ConversionCandidate `json:"under,omitempty"`
	Over            *ConversionCandidate `json:"over,omitempty"`
	Availability    *Availability        `json:"availability,omitempty"`
	PaymentType     PaymentType          `json:"paymentType"`
	DeliveryType    DeliveryType         `json:"deliveryType"`
	Rates
}
