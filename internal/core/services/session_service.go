package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/google/uuid"
)

// operational reports whether an opening checkin may move money: it is open, its balance
// check completed and no checkout is pending on it.
func operational(ws *domain.WorkSession) bool {
	return ws != nil && ws.IsOpen() && ws.IsOpening && ws.Reconciled() && ws.ClosingSessionID == nil
}

// finalizeCheckout closes every open session of the checkout's user, the checkout included.
func finalizeCheckout(ctx context.Context, repos portsrepo.RepositoryProvider, checkout *domain.WorkSession, now time.Time) error {
	open, err := repos.WorkSessionRepo.ListOpenSessions(ctx, checkout.UserID)
	if err != nil {
		return err
	}
	for _, ws := range open {
		ws.Status = domain.SessionClosed
		ws.ClosedAt = &now
		if ws.SessionID == checkout.SessionID {
			ws.ChecksStarted = checkout.ChecksStarted
			ws.ChecksEnded = checkout.ChecksEnded
			*checkout = ws
		}
		if err := repos.WorkSessionRepo.UpdateSession(ctx, ws); err != nil {
			return err
		}
	}
	return nil
}

type sessionService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewSessionService creates the checkin/checkout service.
func NewSessionService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.SessionSvcFacade {
	return &sessionService{BaseService: newBaseService(opts...), repos: repos}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func linkedDesk(ctx context.Context, repos portsrepo.RepositoryProvider, userID string) (string, error) {
	link, err := repos.DeskLinkRepo.FindDeskLink(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: link a desk before starting a session", apperrors.ErrValidation)
		}
		return "", err
	}
	return link.DeskID, nil
}

func (s *sessionService) Checkin(ctx context.Context, userID string) (*domain.WorkSession, error) {
	var created domain.WorkSession
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		deskID, err := linkedDesk(ctx, repos, userID)
		if err != nil {
			return err
		}

		if _, err := repos.WorkSessionRepo.FindOpenCheckin(ctx, userID, deskID); err == nil {
			return fmt.Errorf("%w: already checked in at desk %s", apperrors.ErrDuplicate, deskID)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		created = domain.WorkSession{
			SessionID: uuid.NewString(),
			UserID:    userID,
			DeskID:    deskID,
			Type:      domain.SessionCheckin,
			Status:    domain.SessionOpen,
			StartedAt: s.now(),
		}

		opening, err := repos.WorkSessionRepo.FindOpenOpeningCheckin(ctx, userID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			if claim, err := repos.WorkSessionRepo.FindDeskClaim(ctx, deskID); err == nil {
				return fmt.Errorf("%w: desk %s is held by another user (session %s)", apperrors.ErrDeskClaimed, deskID, claim.SessionID)
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			created.IsOpening = true
			created.OpeningDeskID = deskID
		case err != nil:
			return err
		default:
			if opening.ClosingSessionID != nil {
				return fmt.Errorf("%w: opening desk %s is checking out", apperrors.ErrInvalidState, opening.DeskID)
			}
			created.OpeningDeskID = opening.DeskID
		}

		return repos.WorkSessionRepo.SaveSession(ctx, created)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Checkin refused")
		return nil, err
	}

	s.LogInfo(ctx, "Checked in",
		slog.String("session_id", created.SessionID),
		slog.String("desk_id", created.DeskID),
		slog.Bool("is_opening", created.IsOpening))
	return &created, nil
}

func (s *sessionService) Checkout(ctx context.Context, userID string) (*domain.WorkSession, error) {
	var checkout domain.WorkSession
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		deskID, err := linkedDesk(ctx, repos, userID)
		if err != nil {
			return err
		}
		checkin, err := repos.WorkSessionRepo.FindOpenCheckin(ctx, userID, deskID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: no open checkin at desk %s", apperrors.ErrInvalidState, deskID)
			}
			return err
		}
		if checkin.ClosingSessionID != nil {
			return fmt.Errorf("%w: checkout already pending for session %s", apperrors.ErrInvalidState, checkin.SessionID)
		}

		now := s.now()
		checkout = domain.WorkSession{
			SessionID:        uuid.NewString(),
			UserID:           userID,
			DeskID:           deskID,
			Type:             domain.SessionCheckout,
			Status:           domain.SessionOpen,
			OpeningDeskID:    checkin.OpeningDeskID,
			IsOpening:        checkin.IsOpening,
			SessionToCloseID: &checkin.SessionID,
			StartedAt:        now,
		}
		if err := repos.WorkSessionRepo.SaveSession(ctx, checkout); err != nil {
			return err
		}

		checkin.ClosingSessionID = &checkout.SessionID
		if checkin.IsOpening {
			// The opening desk stays open until the closing balance check is confirmed.
			return repos.WorkSessionRepo.UpdateSession(ctx, *checkin)
		}

		checkin.Status = domain.SessionClosed
		checkin.ClosedAt = &now
		if err := repos.WorkSessionRepo.UpdateSession(ctx, *checkin); err != nil {
			return err
		}
		checkout.Status = domain.SessionClosed
		checkout.ClosedAt = &now
		return repos.WorkSessionRepo.UpdateSession(ctx, checkout)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Checkout refused")
		return nil, err
	}

	s.LogInfo(ctx, "Checked out",
		slog.String("session_id", checkout.SessionID),
		slog.String("desk_id", checkout.DeskID),
		slog.String("status", string(checkout.Status)))
	return &checkout, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.WorkSession, error) {
	return s.repos.WorkSessionRepo.FindSessionByID(ctx, sessionID)
}

func (s *sessionService) ListOpenSessions(ctx context.Context, userID string) ([]domain.WorkSession, error) {
	sessions, err := s.repos.WorkSessionRepo.ListOpenSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ResolveContext(ctx context.Context, userID string, isAdmin bool) (*domain.SessionContext, error) {
	link, err := s.repos.DeskLinkRepo.FindDeskLink(ctx, userID)
	if err != nil {
		return nil, err
	}
	checkin, err := s.repos.WorkSessionRepo.FindOpenCheckin(ctx, userID, link.DeskID)
	if err != nil {
		return nil, err
	}
	return &domain.SessionContext{
		UserID:        userID,
		DeskID:        link.DeskID,
		SessionID:     checkin.SessionID,
		OpeningDeskID: checkin.OpeningDeskID,
		IsAdmin:       isAdmin,
	}, nil
}
