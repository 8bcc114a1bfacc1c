package mapping

import (
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/models"
)

// ToModelCurrency converts a domain Currency to its row and denomination rows.
func ToModelCurrency(d domain.Currency) (models.Currency, []models.Denomination) {
	denoms := make([]models.Denomination, len(d.Denominations))
	for i, dn := range d.Denominations {
		denoms[i] = models.Denomination{CurrencyCode: d.CurrencyCode, Kind: string(dn.Kind), Value: dn.Value}
	}
	return models.Currency{
		CurrencyCode: d.CurrencyCode,
		Name:         d.Name,
		RateSymbol:   d.RateSymbol,
		IsBase:       d.IsBase,
		IsActive:     d.IsActive,
		AuditFields:  models.AuditFields(d.AuditFields),
	}, denoms
}

// ToDomainCurrency converts a currency row and its denomination rows to a domain Currency
func ToDomainCurrency(m models.Currency, denoms []models.Denomination) domain.Currency {
	c := domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Name:          m.Name,
		RateSymbol:    m.RateSymbol,
		IsBase:        m.IsBase,
		IsActive:      m.IsActive,
		Denominations: make([]domain.Denomination, 0, len(denoms)),
		AuditFields:   domain.AuditFields(m.AuditFields),
	}
	for _, dn := range denoms {
		c.Denominations = append(c.Denominations, domain.Denomination{
			CurrencyCode: dn.CurrencyCode,
			Kind:         domain.DenominationKind(dn.Kind),
			Value:        dn.Value,
		})
	}
	return c
}
