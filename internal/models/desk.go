package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Desk represents a row of the desks table.
type Desk struct {
	DeskID          string `db:"desk_id"`
	WorkcenterID    string `db:"workcenter_id"`
	Name            string `db:"name"`
	PairingCodeHash string `db:"pairing_code_hash"`
}

// CashBalance represents a row of the cash_balances table.
type CashBalance struct {
	DeskID        string          `db:"desk_id"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
