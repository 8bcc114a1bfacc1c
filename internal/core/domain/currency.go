package domain

import "github.com/shopspring/decimal"

// DenominationKind distinguishes paper money from coins.
type DenominationKind string

const (
	DenominationBill DenominationKind = "bill"
	DenominationCoin DenominationKind = "coin"
)

// Denomination is a single accepted face value for a currency.
type Denomination struct {
	CurrencyCode string           `json:"currencyCode"`
	Kind         DenominationKind `json:"kind"`
	Value        decimal.Decimal  `json:"value"` // Face value, always > 0
}

// Currency represents a currency traded at the desks.
type Currency struct {
	CurrencyCode  string         `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name          string         `json:"name"`         // e.g., "US Dollar"
	RateSymbol    string         `json:"rateSymbol"`   // Symbol used when querying the official rate source
	IsBase        bool           `json:"isBase"`       // Exactly one currency is the base currency
	IsActive      bool           `json:"isActive"`
	Denominations []Denomination `json:"denominations"`
	AuditFields
}

// DenominationValues returns the face values accepted for the currency.
func (c Currency) DenominationValues() []decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(c.Denominations))
	for _, d := range c.Denominations {
		values = append(values, d.Value)
	}
	return values
}
