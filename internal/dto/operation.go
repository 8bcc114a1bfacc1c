package dto

import (
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettleLineRequest is a conversion line plus the amounts the operator saw on the quote.
// When set, settlement refuses to commit amounts that differ from them.
type SettleLineRequest struct {
	ConversionLineRequest
	ExpectedReceived  *decimal.Decimal `json:"expectedReceived"`
	ExpectedDelivered *decimal.Decimal `json:"expectedDelivered"`
}

// SettleOperationRequest defines the data needed to settle an operation.
type SettleOperationRequest struct {
	Lines    []SettleLineRequest    `json:"lines" binding:"required,min=1,dive"`
	Transfer *CreateTransferRequest `json:"transfer"`
}

// OperationLineResponse defines the data returned for a settled line.
type OperationLineResponse struct {
	LineID          string          `json:"lineID"`
	SourceCurrency  string          `json:"sourceCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Discount        int             `json:"discount"`
	PaymentType     string          `json:"paymentType"`
	DeliveryType    string          `json:"deliveryType"`
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	AmountDelivered decimal.Decimal `json:"amountDelivered"`
	Rounding        string          `json:"rounding"`
	BuyRate         decimal.Decimal `json:"buyRate"`
	SellRate        decimal.Decimal `json:"sellRate"`
	BaseRate        decimal.Decimal `json:"baseRate"`
}

// OperationResponse defines the data returned for a settled operation.
type OperationResponse struct {
	OperationID   string                  `json:"operationID"`
	UserID        string                  `json:"userID"`
	DeskID        string                  `json:"deskID"`
	CurrentDeskID string                  `json:"currentDeskID"`
	SessionID     string                  `json:"sessionID"`
	TransferID    *string                 `json:"transferID,omitempty"`
	Lines         []OperationLineResponse `json:"lines"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// ToOperationResponse converts a domain.Operation to its DTO.
func ToOperationResponse(op *domain.Operation) OperationResponse {
	lines := make([]OperationLineResponse, len(op.Lines))
	for i, l := range op.Lines {
		lines[i] = OperationLineResponse{
			LineID:          l.LineID,
			SourceCurrency:  l.SourceCurrency,
			TargetCurrency:  l.TargetCurrency,
			Discount:        l.Discount,
			PaymentType:     string(l.PaymentType),
			DeliveryType:    string(l.DeliveryType),
			AmountReceived:  l.AmountReceived,
			AmountDelivered: l.AmountDelivered,
			Rounding:        string(l.Rounding),
			BuyRate:         l.BuyRate,
			SellRate:        l.SellRate,
			BaseRate:        l.BaseRate,
		}
	}
	return OperationResponse{
		OperationID:   op.OperationID,
		UserID:        op.UserID,
		DeskID:        op.DeskID,
		CurrentDeskID: op.CurrentDeskID,
		SessionID:     op.SessionID,
		TransferID:    op.TransferID,
		Lines:         lines,
		CreatedAt:     op.CreatedAt,
	}
}

// ToOperationResponses converts a slice of operations.
func ToOperationResponses(ops []domain.Operation) []OperationResponse {
	res := make([]OperationResponse, len(ops))
	for i, op := range ops {
		res[i] = ToOperationResponse(&op)
	}
	return res
}
