package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a row of the transfers table.
type Transfer struct {
	TransferID   string    `db:"transfer_id"`
	Origin       string    `db:"origin"`
	OperationID  *string   `db:"operation_id"` // Nullable
	SenderDeskID string    `db:"sender_desk_id"`
	CreatedBy    string    `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`
}

// TransferLine represents a row of the transfer_lines table.
type TransferLine struct {
	LineID            string          `db:"line_id"`
	TransferID        string          `db:"transfer_id"`
	SenderDeskID      string          `db:"sender_desk_id"`
	ReceiverDeskID    string          `db:"receiver_desk_id"`
	CurrencyCode      string          `db:"currency_code"`
	Amount            decimal.Decimal `db:"amount"`
	SentBy            string          `db:"sent_by"`
	SentTo            string          `db:"sent_to"`
	StatusSource      string          `db:"status_source"`
	StatusDestination string          `db:"status_destination"`
	SourceTime        time.Time       `db:"source_time"`
	DestinationTime   *time.Time      `db:"destination_time"` // Nullable
	SenderRefunded    bool            `db:"sender_refunded"`
	LastUpdatedAt     time.Time       `db:"last_updated_at"`
}
