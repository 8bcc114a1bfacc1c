package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceCheck compares the recorded balance of one currency at a desk against a physical count.
type BalanceCheck struct {
	CheckID           string           `json:"checkID"`
	SessionID         string           `json:"sessionID"`
	UserID            string           `json:"userID"`
	DeskID            string           `json:"deskID"`
	CurrencyCode      string           `json:"currencyCode"`
	SystemBalance     decimal.Decimal  `json:"systemBalance"`
	PhysicalBalance   *decimal.Decimal `json:"physicalBalance"` // nil until counted
	Difference        decimal.Decimal  `json:"difference"`      // working difference, reset to zero on confirm
	Checked           bool             `json:"checked"`
	Confirmed         bool             `json:"confirmed"`
	Closed            bool             `json:"closed"`
	RecordedShrinkage decimal.Decimal  `json:"recordedShrinkage"` // permanent, non-zero only when a discrepancy was confirmed
	Note              string           `json:"note"`
	CreatedAt         time.Time        `json:"createdAt"`
	LastUpdatedAt     time.Time        `json:"lastUpdatedAt"`
}

// HasShrinkage reports whether a discrepancy was confirmed for this check.
func (c BalanceCheck) HasShrinkage() bool {
	return !c.RecordedShrinkage.IsZero()
}
