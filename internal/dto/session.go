package dto

import (
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LinkDeskRequest declares the desk the user is physically at.
type LinkDeskRequest struct {
	DeskID      string `json:"deskID" binding:"required"`
	PairingCode string `json:"pairingCode" binding:"required"`
}

// DeskLinkResponse defines the data returned for a desk link.
type DeskLinkResponse struct {
	UserID   string    `json:"userID"`
	DeskID   string    `json:"deskID"`
	LinkedAt time.Time `json:"linkedAt"`
}

// ToDeskLinkResponse converts a domain.DeskLink to its DTO.
func ToDeskLinkResponse(l *domain.DeskLink) DeskLinkResponse {
	return DeskLinkResponse{UserID: l.UserID, DeskID: l.DeskID, LinkedAt: l.LinkedAt}
}

// BalanceResponse defines the data returned for one desk balance.
type BalanceResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToBalanceResponses converts desk balances to DTOs.
func ToBalanceResponses(balances []domain.CashBalance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = BalanceResponse{CurrencyCode: b.CurrencyCode, Balance: b.Balance, LastUpdatedAt: b.LastUpdatedAt}
	}
	return res
}

// WorkSessionResponse defines the data returned for a work session.
type WorkSessionResponse struct {
	SessionID        string     `json:"sessionID"`
	UserID           string     `json:"userID"`
	DeskID           string     `json:"deskID"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	OpeningDeskID    string     `json:"openingDeskID"`
	IsOpening        bool       `json:"isOpening"`
	SessionToCloseID *string    `json:"sessionToCloseID,omitempty"`
	ClosingSessionID *string    `json:"closingSessionID,omitempty"`
	ChecksStarted    bool       `json:"checksStarted"`
	ChecksEnded      bool       `json:"checksEnded"`
	StartedAt        time.Time  `json:"startedAt"`
	ClosedAt         *time.Time `json:"closedAt,omitempty"`
}

// ToWorkSessionResponse converts a domain.WorkSession to its DTO.
func ToWorkSessionResponse(s *domain.WorkSession) WorkSessionResponse {
	return WorkSessionResponse{
		SessionID:        s.SessionID,
		UserID:           s.UserID,
		DeskID:           s.DeskID,
		Type:             string(s.Type),
		Status:           string(s.Status),
		OpeningDeskID:    s.OpeningDeskID,
		IsOpening:        s.IsOpening,
		SessionToCloseID: s.SessionToCloseID,
		ClosingSessionID: s.ClosingSessionID,
		ChecksStarted:    s.ChecksStarted,
		ChecksEnded:      s.ChecksEnded,
		StartedAt:        s.StartedAt,
		ClosedAt:         s.ClosedAt,
	}
}

// ToWorkSessionResponses converts a slice of sessions.
func ToWorkSessionResponses(sessions []domain.WorkSession) []WorkSessionResponse {
	res := make([]WorkSessionResponse, len(sessions))
	for i, s := range sessions {
		res[i] = ToWorkSessionResponse(&s)
	}
	return res
}

// RecordCountRequest carries a physical count for one currency.
type RecordCountRequest struct {
	PhysicalBalance decimal.Decimal `json:"physicalBalance"`
}

// AttachNoteRequest explains a recorded shrinkage or surplus.
type AttachNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// BalanceCheckResponse defines the data returned for a balance check.
type BalanceCheckResponse struct {
	CheckID           string           `json:"checkID"`
	SessionID         string           `json:"sessionID"`
	DeskID            string           `json:"deskID"`
	CurrencyCode      string           `json:"currencyCode"`
	SystemBalance     decimal.Decimal  `json:"systemBalance"`
	PhysicalBalance   *decimal.Decimal `json:"physicalBalance,omitempty"`
	Difference        decimal.Decimal  `json:"difference"`
	Checked           bool             `json:"checked"`
	Confirmed         bool             `json:"confirmed"`
	Closed            bool             `json:"closed"`
	RecordedShrinkage decimal.Decimal  `json:"recordedShrinkage"`
	Note              string           `json:"note,omitempty"`
}

// ToBalanceCheckResponse converts a domain.BalanceCheck to its DTO.
func ToBalanceCheckResponse(c *domain.BalanceCheck) BalanceCheckResponse {
	return BalanceCheckResponse{
		CheckID:           c.CheckID,
		SessionID:         c.SessionID,
		DeskID:            c.DeskID,
		CurrencyCode:      c.CurrencyCode,
		SystemBalance:     c.SystemBalance,
		PhysicalBalance:   c.PhysicalBalance,
		Difference:        c.Difference,
		Checked:           c.Checked,
		Confirmed:         c.Confirmed,
		Closed:            c.Closed,
		RecordedShrinkage: c.RecordedShrinkage,
		Note:              c.Note,
	}
}

// ToBalanceCheckResponses converts a slice of checks.
func ToBalanceCheckResponses(checks []domain.BalanceCheck) []BalanceCheckResponse {
	res := make([]BalanceCheckResponse, len(checks))
	for i, c := range checks {
		res[i] = ToBalanceCheckResponse(&c)
	}
	return res
}
