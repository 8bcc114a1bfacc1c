package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/utils/conversion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reconciliationService runs the balance check of opening desks, at checkin and at checkout.
type reconciliationService struct {
	BaseService
	repos  portsrepo.RepositoryProvider
	ledger portssvc.CashLedgerSvcFacade
}

// NewReconciliationService creates the balance check service.
func NewReconciliationService(repos portsrepo.RepositoryProvider, ledger portssvc.CashLedgerSvcFacade, opts ...Option) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{BaseService: newBaseService(opts...), repos: repos, ledger: ledger}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// reconcilable loads a session the user may run balance checks on.
func reconcilable(ctx context.Context, repos portsrepo.RepositoryProvider, userID, sessionID string) (*domain.WorkSession, error) {
	ws, err := repos.WorkSessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ws.UserID != userID {
		return nil, fmt.Errorf("%w: session %s belongs to another user", apperrors.ErrForbidden, sessionID)
	}
	if !ws.IsOpen() || !ws.IsOpening {
		return nil, fmt.Errorf("%w: session %s has no balance check", apperrors.ErrInvalidState, sessionID)
	}
	return ws, nil
}

func requireRunning(ws *domain.WorkSession) error {
	if !ws.ChecksStarted {
		return fmt.Errorf("%w: balance check of session %s not started", apperrors.ErrInvalidState, ws.SessionID)
	}
	if ws.ChecksEnded {
		return fmt.Errorf("%w: balance check of session %s already completed", apperrors.ErrInvalidState, ws.SessionID)
	}
	return nil
}

func (s *reconciliationService) Start(ctx context.Context, userID, sessionID string) ([]domain.BalanceCheck, error) {
	var checks []domain.BalanceCheck
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		ws, err := reconcilable(ctx, repos, userID, sessionID)
		if err != nil {
			return err
		}
		if ws.ChecksStarted {
			return fmt.Errorf("%w: balance check of session %s already started", apperrors.ErrInvalidState, sessionID)
		}

		desk, err := repos.DeskRepo.FindDeskByID(ctx, ws.DeskID)
		if err != nil {
			return err
		}
		wc, err := repos.DeskRepo.FindWorkcenterByID(ctx, desk.WorkcenterID)
		if err != nil {
			return err
		}
		if len(wc.AcceptedCurrencies) == 0 {
			return fmt.Errorf("%w: workcenter %s accepts no currency", apperrors.ErrValidation, wc.WorkcenterID)
		}

		ledger := s.ledger.WithRepository(repos.CashBalanceRepo)
		now := s.now()
		checks = make([]domain.BalanceCheck, 0, len(wc.AcceptedCurrencies))
		for _, code := range wc.AcceptedCurrencies {
			bal, err := ledger.GetBalance(ctx, ws.DeskID, code)
			if err != nil {
				return err
			}
			checks = append(checks, domain.BalanceCheck{
				CheckID:       uuid.NewString(),
				SessionID:     ws.SessionID,
				UserID:        userID,
				DeskID:        ws.DeskID,
				CurrencyCode:  code,
				SystemBalance: bal.Balance,
				CreatedAt:     now,
				LastUpdatedAt: now,
			})
		}
		if err := repos.BalanceCheckRepo.SaveChecks(ctx, checks); err != nil {
			return err
		}

		ws.ChecksStarted = true
		return repos.WorkSessionRepo.UpdateSession(ctx, *ws)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Balance check not started", slog.String("session_id", sessionID))
		return nil, err
	}
	s.LogInfo(ctx, "Balance check started", slog.String("session_id", sessionID), slog.Int("currencies", len(checks)))
	return checks, nil
}

func (s *reconciliationService) RecordPhysicalCount(ctx context.Context, userID, sessionID, currencyCode string, amount decimal.Decimal) (*domain.BalanceCheck, error) {
	amount = conversion.RoundAmount(amount)
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: physical count cannot be negative", apperrors.ErrValidation)
	}

	var updated domain.BalanceCheck
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		ws, err := reconcilable(ctx, repos, userID, sessionID)
		if err != nil {
			return err
		}
		if err := requireRunning(ws); err != nil {
			return err
		}
		checks, err := repos.BalanceCheckRepo.ListChecksBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		for _, c := range checks {
			if c.CurrencyCode != currencyCode {
				continue
			}
			if c.Confirmed {
				return fmt.Errorf("%w: %s count already confirmed", apperrors.ErrInvalidState, currencyCode)
			}
			counted := amount
			c.PhysicalBalance = &counted
			c.Checked = true
			c.LastUpdatedAt = s.now()
			updated = c
			return repos.BalanceCheckRepo.UpdateCheck(ctx, c)
		}
		return fmt.Errorf("%w: no %s check in session %s", apperrors.ErrNotFound, currencyCode, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// settle applies fn to every counted, unconfirmed check and completes the session's balance
// check when nothing is left pending.
func (s *reconciliationService) settle(ctx context.Context, userID, sessionID string, fn func(ctx context.Context, repos portsrepo.RepositoryProvider, c *domain.BalanceCheck, diff decimal.Decimal) error) ([]domain.BalanceCheck, []domain.Event, error) {
	var (
		checks []domain.BalanceCheck
		events []domain.Event
	)
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		events = events[:0]
		ws, err := reconcilable(ctx, repos, userID, sessionID)
		if err != nil {
			return err
		}
		if err := requireRunning(ws); err != nil {
			return err
		}
		checks, err = repos.BalanceCheckRepo.ListChecksBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		now := s.now()
		allConfirmed := true
		for i := range checks {
			c := &checks[i]
			if c.Confirmed || c.PhysicalBalance == nil {
				allConfirmed = allConfirmed && c.Confirmed
				continue
			}
			diff := c.PhysicalBalance.Sub(c.SystemBalance)
			c.Difference = diff
			if diff.IsZero() {
				c.Confirmed = true
				c.Closed = true
			} else if err := fn(ctx, repos, c, diff); err != nil {
				return err
			}
			if c.HasShrinkage() && c.Confirmed {
				events = append(events, s.event(ctx, domain.EventShrinkageRecorded, domain.SeverityWarning, "Balance discrepancy recorded",
					fmt.Sprintf("%s %s at desk %s", c.RecordedShrinkage.StringFixed(2), c.CurrencyCode, c.DeskID)))
			}
			c.LastUpdatedAt = now
			if err := repos.BalanceCheckRepo.UpdateCheck(ctx, *c); err != nil {
				return err
			}
			allConfirmed = allConfirmed && c.Confirmed
		}

		if !allConfirmed {
			return nil
		}
		ws.ChecksEnded = true
		if ws.Type == domain.SessionCheckout {
			return finalizeCheckout(ctx, repos, ws, now)
		}
		return repos.WorkSessionRepo.UpdateSession(ctx, *ws)
	})
	if err != nil {
		return nil, nil, err
	}
	return checks, events, nil
}

// SearchDifference computes differences and auto-confirms the currencies that match.
func (s *reconciliationService) SearchDifference(ctx context.Context, userID, sessionID string) ([]domain.BalanceCheck, error) {
	checks, events, err := s.settle(ctx, userID, sessionID, func(context.Context, portsrepo.RepositoryProvider, *domain.BalanceCheck, decimal.Decimal) error {
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Difference search failed", slog.String("session_id", sessionID))
		return nil, err
	}
	s.EmitAll(ctx, events)
	return checks, nil
}

// Confirm accepts every counted discrepancy: the ledger takes the physical count and the
// difference is kept as recorded shrinkage.
func (s *reconciliationService) Confirm(ctx context.Context, userID, sessionID string) ([]domain.BalanceCheck, error) {
	checks, events, err := s.settle(ctx, userID, sessionID, func(ctx context.Context, repos portsrepo.RepositoryProvider, c *domain.BalanceCheck, diff decimal.Decimal) error {
		if _, err := s.ledger.WithRepository(repos.CashBalanceRepo).Set(ctx, c.DeskID, c.CurrencyCode, *c.PhysicalBalance); err != nil {
			return err
		}
		c.RecordedShrinkage = diff
		c.Difference = decimal.Zero
		c.Confirmed = true
		c.Closed = false
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Balance check confirmation failed", slog.String("session_id", sessionID))
		return nil, err
	}
	s.EmitAll(ctx, events)
	s.LogInfo(ctx, "Balance check confirmed", slog.String("session_id", sessionID))
	return checks, nil
}

func (s *reconciliationService) AttachNote(ctx context.Context, userID, checkID, note string) (*domain.BalanceCheck, error) {
	var updated domain.BalanceCheck
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		c, err := repos.BalanceCheckRepo.FindCheckByID(ctx, checkID)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return fmt.Errorf("%w: check %s belongs to another user", apperrors.ErrForbidden, checkID)
		}
		c.Note = note
		if c.Confirmed {
			c.Closed = true
		}
		c.LastUpdatedAt = s.now()
		updated = *c
		return repos.BalanceCheckRepo.UpdateCheck(ctx, *c)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *reconciliationService) ListChecks(ctx context.Context, sessionID string) ([]domain.BalanceCheck, error) {
	checks, err := s.repos.BalanceCheckRepo.ListChecksBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks of session %s: %w", sessionID, err)
	}
	return checks, nil
}
