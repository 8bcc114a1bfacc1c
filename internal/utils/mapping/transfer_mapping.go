package mapping

import (
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/models"
)

// ToModelTransfer converts a domain Transfer to its header row. Lines are mapped separately.
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:   d.TransferID,
		Origin:       string(d.Origin),
		OperationID:  d.OperationID,
		SenderDeskID: d.SenderDeskID,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainTransfer converts a transfer row and its line rows to a domain Transfer
func ToDomainTransfer(m models.Transfer, lines []models.TransferLine) domain.Transfer {
	return domain.Transfer{
		TransferID:   m.TransferID,
		Origin:       domain.TransferOrigin(m.Origin),
		OperationID:  m.OperationID,
		SenderDeskID: m.SenderDeskID,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		Lines:        ToDomainTransferLineSlice(lines),
	}
}

// ToModelTransferLine converts a domain TransferLine to a model TransferLine
func ToModelTransferLine(d domain.TransferLine) models.TransferLine {
	return models.TransferLine{
		LineID:            d.LineID,
		TransferID:        d.TransferID,
		SenderDeskID:      d.SenderDeskID,
		ReceiverDeskID:    d.ReceiverDeskID,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		SentBy:            d.SentBy,
		SentTo:            d.SentTo,
		StatusSource:      string(d.StatusSource),
		StatusDestination: string(d.StatusDestination),
		SourceTime:        d.SourceTime,
		DestinationTime:   d.DestinationTime,
		SenderRefunded:    d.SenderRefunded,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainTransferLine converts a model TransferLine to a domain TransferLine
func ToDomainTransferLine(m models.TransferLine) domain.TransferLine {
	return domain.TransferLine{
		LineID:            m.LineID,
		TransferID:        m.TransferID,
		SenderDeskID:      m.SenderDeskID,
		ReceiverDeskID:    m.ReceiverDeskID,
		CurrencyCode:      m.CurrencyCode,
		Amount:            m.Amount,
		SentBy:            m.SentBy,
		SentTo:            m.SentTo,
		StatusSource:      domain.SourceStatus(m.StatusSource),
		StatusDestination: domain.DestinationStatus(m.StatusDestination),
		SourceTime:        m.SourceTime,
		DestinationTime:   m.DestinationTime,
		SenderRefunded:    m.SenderRefunded,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ToDomainTransferLineSlice converts a slice of line rows.
func ToDomainTransferLineSlice(ms []models.TransferLine) []domain.TransferLine {
	ds := make([]domain.TransferLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransferLine(m)
	}
	return ds
}
