package mapping

import (
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/models"
)

// ToModelOperation converts a domain Operation to its header row and line rows.
func ToModelOperation(d domain.Operation) (models.Operation, []models.OperationLine) {
	lines := make([]models.OperationLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.OperationLine{
			LineID:          l.LineID,
			OperationID:     d.OperationID,
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
	return models.Operation{
		OperationID:   d.OperationID,
		UserID:        d.UserID,
		DeskID:        d.DeskID,
		CurrentDeskID: d.CurrentDeskID,
		SessionID:     d.SessionID,
		TransferID:    d.TransferID,
		CreatedAt:     d.CreatedAt,
	}, lines
}

// ToDomainOperation converts an operation row and its line rows to a domain Operation
func ToDomainOperation(m models.Operation, lines []models.OperationLine) domain.Operation {
	op := domain.Operation{
		OperationID:   m.OperationID,
		UserID:        m.UserID,
		DeskID:        m.DeskID,
		CurrentDeskID: m.CurrentDeskID,
		SessionID:     m.SessionID,
		TransferID:    m.TransferID,
		CreatedAt:     m.CreatedAt,
		Lines:         make([]domain.OperationLine, len(lines)),
	}
	for i, l := range lines {
		op.Lines[i] = domain.OperationLine{
			LineID:          l.LineID,
			OperationID:     l.OperationID,
			SourceCurrency:  l.SourceCurrency,
			TargetCurrency:  l.TargetCurrency,
			Discount:        l.Discount,
			PaymentType:     domain.PaymentType(l.PaymentType),
			DeliveryType:    domain.DeliveryType(l.DeliveryType),
			AmountReceived:  l.AmountReceived,
			AmountDelivered: l.AmountDelivered,
			Rounding:        domain.RoundingDirection(l.Rounding),
			Rates:           domain.Rates{BuyRate: l.BuyRate, SellRate: l.SellRate, BaseRate: l.BaseRate},
		}
	}
	return op
}
