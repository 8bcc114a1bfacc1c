package dto

import (
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferLineRequest moves an amount of one currency to a receiver desk.
type TransferLineRequest struct {
	ReceiverDeskID string          `json:"receiverDeskID" binding:"required"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	Amount         decimal.Decimal `json:"amount"`
}

// CreateTransferRequest defines the data needed to create a transfer.
type CreateTransferRequest struct {
	Lines []TransferLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RedirectTransferLineRequest names the new receiver desk of a pending line.
type RedirectTransferLineRequest struct {
	ReceiverDeskID string `json:"receiverDeskID" binding:"required"`
}

// TransferLineResponse defines the data returned for a transfer line.
type TransferLineResponse struct {
	LineID            string          `json:"lineID"`
	TransferID        string          `json:"transferID"`
	SenderDeskID      string          `json:"senderDeskID"`
	ReceiverDeskID    string          `json:"receiverDeskID"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	SentBy            string          `json:"sentBy"`
	SentTo            string          `json:"sentTo"`
	StatusSource      string          `json:"statusSource"`
	StatusDestination string          `json:"statusDestination"`
	SourceTime        time.Time       `json:"sourceTime"`
	DestinationTime   *time.Time      `json:"destinationTime,omitempty"`
	SenderRefunded    bool            `json:"senderRefunded"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID   string                 `json:"transferID"`
	Origin       string                 `json:"origin"`
	OperationID  *string                `json:"operationID,omitempty"`
	SenderDeskID string                 `json:"senderDeskID"`
	CreatedBy    string                 `json:"createdBy"`
	CreatedAt    time.Time              `json:"createdAt"`
	Lines        []TransferLineResponse `json:"lines"`
}

// ToTransferLineResponse converts a domain.TransferLine to its DTO.
func ToTransferLineResponse(l *domain.TransferLine) TransferLineResponse {
	return TransferLineResponse{
		LineID:            l.LineID,
		TransferID:        l.TransferID,
		SenderDeskID:      l.SenderDeskID,
		ReceiverDeskID:    l.ReceiverDeskID,
		CurrencyCode:      l.CurrencyCode,
		Amount:            l.Amount,
		SentBy:            l.SentBy,
		SentTo:            l.SentTo,
		StatusSource:      string(l.StatusSource),
		StatusDestination: string(l.StatusDestination),
		SourceTime:        l.SourceTime,
		DestinationTime:   l.DestinationTime,
		SenderRefunded:    l.SenderRefunded,
	}
}

// ToTransferLineResponses converts a slice of transfer lines.
func ToTransferLineResponses(lines []domain.TransferLine) []TransferLineResponse {
	res := make([]TransferLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToTransferLineResponse(&l)
	}
	return res
}

// ToTransferResponse converts a domain.Transfer to its DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:   t.TransferID,
		Origin:       string(t.Origin),
		OperationID:  t.OperationID,
		SenderDeskID: t.SenderDeskID,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		Lines:        ToTransferLineResponses(t.Lines),
	}
}
