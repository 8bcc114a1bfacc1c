package models

import "github.com/shopspring/decimal"

// Currency represents a row of the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "USD")
	Name         string `db:"name"`
	RateSymbol   string `db:"rate_symbol"`
	IsBase       bool   `db:"is_base"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// Denomination represents a row of the denominations table.
type Denomination struct {
	CurrencyCode string          `db:"currency_code"`
	Kind         string          `db:"kind"`
	Value        decimal.Decimal `db:"value"`
}
