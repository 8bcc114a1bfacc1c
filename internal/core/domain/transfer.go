package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferOrigin tags whether a transfer stands alone or was created with an operation.
type TransferOrigin string

const (
	TransferStandalone TransferOrigin = "standalone"
	TransferOperation  TransferOrigin = "operation"
)

// SourceStatus is the sender side status of a transfer line.
type SourceStatus string

const (
	SourceSent      SourceStatus = "sent"
	SourceCancelled SourceStatus = "cancelled"
)

// DestinationStatus is the receiver side status of a transfer line.
type DestinationStatus string

const (
	DestinationPending   DestinationStatus = "pending"
	DestinationReceived  DestinationStatus = "received"
	DestinationCancelled DestinationStatus = "cancelled"
)

// Transfer groups lines moving cash out of one desk.
type Transfer struct {
	TransferID   string         `json:"transferID"`
	Origin       TransferOrigin `json:"origin"`
	OperationID  *string        `json:"operationID"`
	SenderDeskID string         `json:"senderDeskID"`
	CreatedBy    string         `json:"createdBy"`
	CreatedAt    time.Time      `json:"createdAt"`
	Lines        []TransferLine `json:"lines"`
}

// TransferLine moves an amount of a single currency to a receiver desk.
type TransferLine struct {
	LineID            string            `json:"lineID"`
	TransferID        string            `json:"transferID"`
	SenderDeskID      string            `json:"senderDeskID"`
	ReceiverDeskID    string            `json:"receiverDeskID"`
	CurrencyCode      string            `json:"currencyCode"`
	Amount            decimal.Decimal   `json:"amount"`
	SentBy            string            `json:"sentBy"`
	SentTo            string            `json:"sentTo"` // user holding the receiver desk as opening desk
	StatusSource      SourceStatus      `json:"statusSource"`
	StatusDestination DestinationStatus `json:"statusDestination"`
	SourceTime        time.Time         `json:"sourceTime"`
	DestinationTime   *time.Time        `json:"destinationTime"`
	SenderRefunded    bool              `json:"senderRefunded"`
	LastUpdatedAt     time.Time         `json:"lastUpdatedAt"`
}

// IsPending reports whether the receiver has not acted on the line yet.
func (l TransferLine) IsPending() bool {
	return l.StatusSource == SourceSent && l.StatusDestination == DestinationPending
}
