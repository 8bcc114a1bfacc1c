package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation represents a row of the operations table.
type Operation struct {
	OperationID   string    `db:"operation_id"`
	UserID        string    `db:"user_id"`
	DeskID        string    `db:"desk_id"`
	CurrentDeskID string    `db:"current_desk_id"`
	SessionID     string    `db:"session_id"`
	TransferID    *string   `db:"transfer_id"` // Nullable
	CreatedAt     time.Time `db:"created_at"`
}

// OperationLine represents a row of the operation_lines table.
type OperationLine struct {
	LineID          string          `db:"line_id"`
	OperationID     string          `db:"operation_id"`
	SourceCurrency  string          `db:"source_currency"`
	TargetCurrency  string          `db:"target_currency"`
	Discount        int             `db:"discount"`
	PaymentType     string          `db:"payment_type"`
	DeliveryType    string          `db:"delivery_type"`
	AmountReceived  decimal.Decimal `db:"amount_received"`
	AmountDelivered decimal.Decimal `db:"amount_delivered"`
	Rounding        string          `db:"rounding"`
	BuyRate         decimal.Decimal `db:"buy_rate"`
	SellRate        decimal.Decimal `db:"sell_rate"`
	BaseRate        decimal.Decimal `db:"base_rate"`
}
