package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a settled set of exchange lines. Settled operations are final.
type Operation struct {
	OperationID   string          `json:"operationID"`
	UserID        string          `json:"userID"`
	DeskID        string          `json:"deskID"`        // desk whose ledger was affected (opening desk)
	CurrentDeskID string          `json:"currentDeskID"` // desk the user was working at
	SessionID     string          `json:"sessionID"`
	TransferID    *string         `json:"transferID"`
	Lines         []OperationLine `json:"lines"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OperationLine is the historical record of one settled conversion.
type OperationLine struct {
	LineID          string            `json:"lineID"`
	OperationID     string            `json:"operationID"`
	SourceCurrency  string            `json:"sourceCurrency"`
	TargetCurrency  string            `json:"targetCurrency"`
	Discount        int               `json:"discount"`
	PaymentType     PaymentType       `json:"paymentType"`
	DeliveryType    DeliveryType      `json:"deliveryType"`
	AmountReceived  decimal.Decimal   `json:"amountReceived"`
	AmountDelivered decimal.Decimal   `json:"amountDelivered"`
	Rounding        RoundingDirection `json:"rounding"`
	Rates
}
