package services

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DeskSvc handles the declaration of the desk a user is physically working at.
type DeskSvc interface {
	// LinkDesk links the user to deskID after verifying the desk pairing code.
	LinkDesk(ctx context.Context, userID, deskID, pairingCode string) (*domain.DeskLink, error)
	CurrentDesk(ctx context.Context, userID string) (*domain.DeskLink, error)
}

// SessionReaderSvc defines read operations for work sessions.
type SessionReaderSvc interface {
	GetSession(ctx context.Context, sessionID string) (*domain.WorkSession, error)
	ListOpenSessions(ctx context.Context, userID string) ([]domain.WorkSession, error)

	// ResolveContext builds the session context for the user's linked desk. It fails with
	// apperrors.ErrNotFound when the user has no linked desk or no open checkin there.
	ResolveContext(ctx context.Context, userID string, isAdmin bool) (*domain.SessionContext, error)
}

// SessionWriterSvc drives the checkin/checkout state machine at the user's linked desk.
type SessionWriterSvc interface {
	Checkin(ctx context.Context, userID string) (*domain.WorkSession, error)
	Checkout(ctx context.Context, userID string) (*domain.WorkSession, error)
}

// SessionSvcFacade combines all session operations.
type SessionSvcFacade interface {
	SessionReaderSvc
	SessionWriterSvc
}

// ReconciliationSvcFacade drives the balance check workflow of opening-desk sessions.
type ReconciliationSvcFacade interface {
	Start(ctx context.Context, userID, sessionID string) ([]domain.BalanceCheck, error)
	RecordPhysicalCount(ctx context.Context, userID, sessionID, currencyCode string, amount decimal.Decimal) (*domain.BalanceCheck, error)
	SearchDifference(ctx context.Context, userID, sessionID string) ([]domain.BalanceCheck, error)
	Confirm(ctx context.Context, userID, sessionID string) ([]domain.BalanceCheck, error)
	AttachNote(ctx context.Context, userID, checkID, note string) (*domain.BalanceCheck, error)
	ListChecks(ctx context.Context, sessionID string) ([]domain.BalanceCheck, error)
}
