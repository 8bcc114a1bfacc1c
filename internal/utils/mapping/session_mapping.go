package mapping

import (
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/models"
)

// ToModelWorkSession converts a domain WorkSession to a model WorkSession
func ToModelWorkSession(d domain.WorkSession) models.WorkSession {
	return models.WorkSession{
		SessionID:        d.SessionID,
		UserID:           d.UserID,
		DeskID:           d.DeskID,
		SessionType:      string(d.Type),
		Status:           string(d.Status),
		OpeningDeskID:    d.OpeningDeskID,
		IsOpening:        d.IsOpening,
		SessionToCloseID: d.SessionToCloseID,
		ClosingSessionID: d.ClosingSessionID,
		ChecksStarted:    d.ChecksStarted,
		ChecksEnded:      d.ChecksEnded,
		StartedAt:        d.StartedAt,
		ClosedAt:         d.ClosedAt,
	}
}

// ToDomainWorkSession converts a model WorkSession to a domain WorkSession
func ToDomainWorkSession(m models.WorkSession) domain.WorkSession {
	return domain.WorkSession{
		SessionID:        m.SessionID,
		UserID:           m.UserID,
		DeskID:           m.DeskID,
		Type:             domain.SessionType(m.SessionType),
		Status:           domain.SessionStatus(m.Status),
		OpeningDeskID:    m.OpeningDeskID,
		IsOpening:        m.IsOpening,
		SessionToCloseID: m.SessionToCloseID,
		ClosingSessionID: m.ClosingSessionID,
		ChecksStarted:    m.ChecksStarted,
		ChecksEnded:      m.ChecksEnded,
		StartedAt:        m.StartedAt,
		ClosedAt:         m.ClosedAt,
	}
}

// ToDomainWorkSessionSlice converts a slice of session rows.
func ToDomainWorkSessionSlice(ms []models.WorkSession) []domain.WorkSession {
	ds := make([]domain.WorkSession, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkSession(m)
	}
	return ds
}

// ToModelBalanceCheck converts a domain BalanceCheck to a model BalanceCheck
func ToModelBalanceCheck(d domain.BalanceCheck) models.BalanceCheck {
	return models.BalanceCheck{
		CheckID:           d.CheckID,
		SessionID:         d.SessionID,
		UserID:            d.UserID,
		DeskID:            d.DeskID,
		CurrencyCode:      d.CurrencyCode,
		SystemBalance:     d.SystemBalance,
		PhysicalBalance:   d.PhysicalBalance,
		Difference:        d.Difference,
		Checked:           d.Checked,
		Confirmed:         d.Confirmed,
		Closed:            d.Closed,
		RecordedShrinkage: d.RecordedShrinkage,
		Note:              d.Note,
		CreatedAt:         d.CreatedAt,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainBalanceCheck converts a model BalanceCheck to a domain BalanceCheck
func ToDomainBalanceCheck(m models.BalanceCheck) domain.BalanceCheck {
	return domain.BalanceCheck{
		CheckID:           m.CheckID,
		SessionID:         m.SessionID,
		UserID:            m.UserID,
		DeskID:            m.DeskID,
		CurrencyCode:      m.CurrencyCode,
		SystemBalance:     m.SystemBalance,
		PhysicalBalance:   m.PhysicalBalance,
		Difference:        m.Difference,
		Checked:           m.Checked,
		Confirmed:         m.Confirmed,
		Closed:            m.Closed,
		RecordedShrinkage: m.RecordedShrinkage,
		Note:              m.Note,
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ToDomainBalanceCheckSlice converts a slice of balance check rows.
func ToDomainBalanceCheckSlice(ms []models.BalanceCheck) []domain.BalanceCheck {
	ds := make([]domain.BalanceCheck, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalanceCheck(m)
	}
	return ds
}
