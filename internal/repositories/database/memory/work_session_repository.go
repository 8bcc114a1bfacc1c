package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
)

type workSessionRepository struct {
	baseRepository
}

var _ portsrepo.WorkSessionRepositoryFacade = (*workSessionRepository)(nil)

func isOpenOpeningCheckin(ws domain.WorkSession) bool {
	return ws.IsOpen() && ws.IsOpening && ws.Type == domain.SessionCheckin
}

func (r *workSessionRepository) findOne(match func(domain.WorkSession) bool, notFound string) (*domain.WorkSession, error) {
	var found *domain.WorkSession
	err := r.view(func(s *state) error {
		for _, ws := range s.sessions {
			if match(ws) {
				found = &ws
				return nil
			}
		}
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, notFound)
	})
	return found, err
}

func (r *workSessionRepository) FindSessionByID(_ context.Context, sessionID string) (*domain.WorkSession, error) {
	return r.findOne(func(ws domain.WorkSession) bool { return ws.SessionID == sessionID }, "session "+sessionID)
}

func (r *workSessionRepository) FindOpenOpeningCheckin(_ context.Context, userID string) (*domain.WorkSession, error) {
	return r.findOne(func(ws domain.WorkSession) bool {
		return ws.UserID == userID && isOpenOpeningCheckin(ws)
	}, "no open opening checkin for user "+userID)
}

func (r *workSessionRepository) FindDeskClaim(_ context.Context, deskID string) (*domain.WorkSession, error) {
	return r.findOne(func(ws domain.WorkSession) bool {
		return ws.DeskID == deskID && isOpenOpeningCheckin(ws)
	}, "desk "+deskID+" is not claimed")
}

func (r *workSessionRepository) FindOpenCheckin(_ context.Context, userID, deskID string) (*domain.WorkSession, error) {
	return r.findOne(func(ws domain.WorkSession) bool {
		return ws.UserID == userID && ws.DeskID == deskID && ws.IsOpen() && ws.Type == domain.SessionCheckin
	}, "no open checkin at desk "+deskID)
}

func (r *workSessionRepository) ListOpenSessions(_ context.Context, userID string) ([]domain.WorkSession, error) {
	out := []domain.WorkSession{}
	err := r.view(func(s *state) error {
		for _, ws := range s.sessions {
			if ws.UserID == userID && ws.IsOpen() {
				out = append(out, ws)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.WorkSession) int { return a.StartedAt.Compare(b.StartedAt) })
	return out, err
}

func (r *workSessionRepository) SaveSession(_ context.Context, session domain.WorkSession) error {
	return r.view(func(s *state) error {
		if _, exists := s.sessions[session.SessionID]; exists {
			return fmt.Errorf("%w: session %s", apperrors.ErrDuplicate, session.SessionID)
		}
		if isOpenOpeningCheckin(session) {
			for _, ws := range s.sessions {
				if !isOpenOpeningCheckin(ws) {
					continue
				}
				if ws.DeskID == session.DeskID || ws.UserID == session.UserID {
					return fmt.Errorf("%w: desk %s", apperrors.ErrDeskClaimed, session.DeskID)
				}
			}
		}
		s.sessions[session.SessionID] = session
		return nil
	})
}

func (r *workSessionRepository) UpdateSession(_ context.Context, session domain.WorkSession) error {
	return r.view(func(s *state) error {
		if _, exists := s.sessions[session.SessionID]; !exists {
			return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, session.SessionID)
		}
		s.sessions[session.SessionID] = session
		return nil
	})
}
