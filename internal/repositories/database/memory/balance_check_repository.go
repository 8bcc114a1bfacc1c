package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
)

type balanceCheckRepository struct {
	baseRepository
}

var _ portsrepo.BalanceCheckRepositoryFacade = (*balanceCheckRepository)(nil)

func (r *balanceCheckRepository) FindCheckByID(_ context.Context, checkID string) (*domain.BalanceCheck, error) {
	var found domain.BalanceCheck
	err := r.view(func(s *state) error {
		c, ok := s.checks[checkID]
		if !ok {
			return fmt.Errorf("%w: balance check %s", apperrors.ErrNotFound, checkID)
		}
		found = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *balanceCheckRepository) ListChecksBySession(_ context.Context, sessionID string) ([]domain.BalanceCheck, error) {
	out := []domain.BalanceCheck{}
	err := r.view(func(s *state) error {
		for _, c := range s.checks {
			if c.SessionID == sessionID {
				out = append(out, c)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.BalanceCheck) int { return strings.Compare(a.CurrencyCode, b.CurrencyCode) })
	return out, err
}

func (r *balanceCheckRepository) SaveChecks(_ context.Context, checks []domain.BalanceCheck) error {
	return r.view(func(s *state) error {
		for _, c := range checks {
			if _, exists := s.checks[c.CheckID]; exists {
				return fmt.Errorf("%w: balance check %s", apperrors.ErrDuplicate, c.CheckID)
			}
		}
		for _, c := range checks {
			s.checks[c.CheckID] = c
		}
		return nil
	})
}

func (r *balanceCheckRepository) UpdateCheck(_ context.Context, check domain.BalanceCheck) error {
	return r.view(func(s *state) error {
		if _, exists := s.checks[check.CheckID]; !exists {
			return fmt.Errorf("%w: balance check %s", apperrors.ErrNotFound, check.CheckID)
		}
		s.checks[check.CheckID] = check
		return nil
	})
}
