package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/SscSPs/forexdesk/internal/models"
	"github.com/SscSPs/forexdesk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxWorkSessionRepository struct {
	BaseRepository
}

var _ portsrepo.WorkSessionRepositoryFacade = (*PgxWorkSessionRepository)(nil)

const sessionSelect = `
SELECT session_id, user_id, desk_id, session_type, status, opening_desk_id, is_opening,
	session_to_close_id, closing_session_id, checks_started, checks_ended, started_at, closed_at
FROM work_sessions
`

const openOpeningCheckin = `status = 'open' AND is_opening AND session_type = 'checkin'`

func (r *PgxWorkSessionRepository) getSessions(ctx context.Context, filterQuery string, args ...any) ([]domain.WorkSession, error) {
	rows, err := r.DB.Query(ctx, sessionSelect+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query work sessions", err)
	}
	sessions, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WorkSession])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect work session rows", err)
	}
	return mapping.ToDomainWorkSessionSlice(sessions), nil
}

func (r *PgxWorkSessionRepository) getOne(ctx context.Context, notFound, filterQuery string, args ...any) (*domain.WorkSession, error) {
	sessions, err := r.getSessions(ctx, filterQuery+r.lockClause(), args...)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, notFound)
	}
	return &sessions[0], nil
}

func (r *PgxWorkSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.WorkSession, error) {
	return r.getOne(ctx, "session "+sessionID, `WHERE session_id = $1`, sessionID)
}

func (r *PgxWorkSessionRepository) FindOpenOpeningCheckin(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return r.getOne(ctx, "no open opening checkin for user "+userID, `WHERE user_id = $1 AND `+openOpeningCheckin, userID)
}

func (r *PgxWorkSessionRepository) FindDeskClaim(ctx context.Context, deskID string) (*domain.WorkSession, error) {
	return r.getOne(ctx, "desk "+deskID+" is not claimed", `WHERE desk_id = $1 AND `+openOpeningCheckin, deskID)
}

func (r *PgxWorkSessionRepository) FindOpenCheckin(ctx context.Context, userID, deskID string) (*domain.WorkSession, error) {
	return r.getOne(ctx, "no open checkin at desk "+deskID,
		`WHERE user_id = $1 AND desk_id = $2 AND status = 'open' AND session_type = 'checkin'`, userID, deskID)
}

func (r *PgxWorkSessionRepository) ListOpenSessions(ctx context.Context, userID string) ([]domain.WorkSession, error) {
	return r.getSessions(ctx, `WHERE user_id = $1 AND status = 'open' ORDER BY started_at`, userID)
}

func (r *PgxWorkSessionRepository) SaveSession(ctx context.Context, session domain.WorkSession) error {
	m := mapping.ToModelWorkSession(session)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO work_sessions (
			session_id, user_id, desk_id, session_type, status, opening_desk_id, is_opening,
			session_to_close_id, closing_session_id, checks_started, checks_ended, started_at, closed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.SessionID, m.UserID, m.DeskID, m.SessionType, m.Status, m.OpeningDeskID, m.IsOpening,
		m.SessionToCloseID, m.ClosingSessionID, m.ChecksStarted, m.ChecksEnded, m.StartedAt, m.ClosedAt,
	)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			switch pgConstraint(err) {
			case "uq_open_opening_desk", "uq_open_opening_user":
				return fmt.Errorf("%w: desk %s", apperrors.ErrDeskClaimed, session.DeskID)
			}
			return fmt.Errorf("%w: session %s", apperrors.ErrDuplicate, session.SessionID)
		}
		return internalError("failed to save work session "+session.SessionID, err)
	}
	return nil
}

func (r *PgxWorkSessionRepository) UpdateSession(ctx context.Context, session domain.WorkSession) error {
	m := mapping.ToModelWorkSession(session)
	tag, err := r.DB.Exec(ctx, `
		UPDATE work_sessions SET
			status = $2, closing_session_id = $3, checks_started = $4, checks_ended = $5, closed_at = $6
		WHERE session_id = $1;`,
		m.SessionID, m.Status, m.ClosingSessionID, m.ChecksStarted, m.ChecksEnded, m.ClosedAt,
	)
	if err != nil {
		return internalError("failed to update work session "+session.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, session.SessionID)
	}
	return nil
}
