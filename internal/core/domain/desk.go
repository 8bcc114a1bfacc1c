package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Workcenter groups desks and defines which currencies they accept.
type Workcenter struct {
	WorkcenterID       string   `json:"workcenterID"`
	Name               string   `json:"name"`
	AcceptedCurrencies []string `json:"acceptedCurrencies"`
}

// Accepts reports whether the workcenter trades the given currency.
func (w Workcenter) Accepts(currencyCode string) bool {
	return slices.Contains(w.AcceptedCurrencies, currencyCode)
}

// Desk is a physical cash desk. Desk data is administered elsewhere and read-only here.
type Desk struct {
	DeskID          string `json:"deskID"`
	WorkcenterID    string `json:"workcenterID"`
	Name            string `json:"name"`
	PairingCodeHash string `json:"-"` // bcrypt hash of the code shown at the desk
}

// CashBalance is the cash held by a desk in one currency.
type CashBalance struct {
	DeskID        string          `json:"deskID"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// DeskLink records the desk a user declared to be working at.
type DeskLink struct {
	UserID   string    `json:"userID"`
	DeskID   string    `json:"deskID"`
	LinkedAt time.Time `json:"linkedAt"`
}
