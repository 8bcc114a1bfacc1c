package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkSession represents a row of the work_sessions table.
type WorkSession struct {
	SessionID        string     `db:"session_id"`
	UserID           string     `db:"user_id"`
	DeskID           string     `db:"desk_id"`
	SessionType      string     `db:"session_type"`
	Status           string     `db:"status"`
	OpeningDeskID    string     `db:"opening_desk_id"`
	IsOpening        bool       `db:"is_opening"`
	SessionToCloseID *string    `db:"session_to_close_id"` // Nullable
	ClosingSessionID *string    `db:"closing_session_id"`  // Nullable
	ChecksStarted    bool       `db:"checks_started"`
	ChecksEnded      bool       `db:"checks_ended"`
	StartedAt        time.Time  `db:"started_at"`
	ClosedAt         *time.Time `db:"closed_at"` // Nullable
}

// BalanceCheck represents a row of the balance_checks table.
type BalanceCheck struct {
	CheckID           string           `db:"check_id"`
	SessionID         string           `db:"session_id"`
	UserID            string           `db:"user_id"`
	DeskID            string           `db:"desk_id"`
	CurrencyCode      string           `db:"currency_code"`
	SystemBalance     decimal.Decimal  `db:"system_balance"`
	PhysicalBalance   *decimal.Decimal `db:"physical_balance"` // Nullable until counted
	Difference        decimal.Decimal  `db:"difference"`
	Checked           bool             `db:"checked"`
	Confirmed         bool             `db:"confirmed"`
	Closed            bool             `db:"closed"`
	RecordedShrinkage decimal.Decimal  `db:"recorded_shrinkage"`
	Note              string           `db:"note"`
	CreatedAt         time.Time        `db:"created_at"`
	LastUpdatedAt     time.Time        `db:"last_updated_at"`
}
