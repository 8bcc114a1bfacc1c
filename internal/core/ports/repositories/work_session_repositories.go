package repositories

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
)

// WorkSessionReader defines read operations for work sessions
type WorkSessionReader interface {
	FindSessionByID(ctx context.Context, sessionID string) (*domain.WorkSession, error)

	// FindOpenOpeningCheckin returns the user's open opening checkin, or ErrNotFound.
	FindOpenOpeningCheckin(ctx context.Context, userID string) (*domain.WorkSession, error)

	// FindDeskClaim returns the open opening checkin holding the desk, or ErrNotFound.
	FindDeskClaim(ctx context.Context, deskID string) (*domain.WorkSession, error)

	// FindOpenCheckin returns the user's open checkin at a desk, or ErrNotFound.
	FindOpenCheckin(ctx context.Context, userID, deskID string) (*domain.WorkSession, error)

	// ListOpenSessions returns every open session of the user.
	ListOpenSessions(ctx context.Context, userID string) ([]domain.WorkSession, error)
}

// WorkSessionWriter defines write operations for work sessions
type WorkSessionWriter interface {
	// SaveSession inserts a session. Inserting a second open opening checkin for a desk or a
	// user fails with apperrors.ErrDeskClaimed.
	SaveSession(ctx context.Context, session domain.WorkSession) error

	UpdateSession(ctx context.Context, session domain.WorkSession) error
}

// WorkSessionRepositoryFacade combines all work session operations.
type WorkSessionRepositoryFacade interface {
	WorkSessionReader
	WorkSessionWriter
}
