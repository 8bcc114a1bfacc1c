package mapping

import (
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/models"
)

// ToDomainDesk converts a model Desk to a domain Desk
func ToDomainDesk(m models.Desk) domain.Desk {
	return domain.Desk{
		DeskID:          m.DeskID,
		WorkcenterID:    m.WorkcenterID,
		Name:            m.Name,
		PairingCodeHash: m.PairingCodeHash,
	}
}

// ToDomainCashBalance converts a model CashBalance to a domain CashBalance
func ToDomainCashBalance(m models.CashBalance) domain.CashBalance {
	return domain.CashBalance{
		DeskID:        m.DeskID,
		CurrencyCode:  m.CurrencyCode,
		Balance:       m.Balance,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToDomainCashBalanceSlice converts a slice of balance rows.
func ToDomainCashBalanceSlice(ms []models.CashBalance) []domain.CashBalance {
	ds := make([]domain.CashBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashBalance(m)
	}
	return ds
}
