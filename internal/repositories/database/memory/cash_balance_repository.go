package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type cashBalanceRepository struct {
	baseRepository
}

var _ portsrepo.CashBalanceRepositoryFacade = (*cashBalanceRepository)(nil)

func (s *state) balance(deskID, currencyCode string) domain.CashBalance {
	if b, ok := s.balances[cellKey{deskID, currencyCode}]; ok {
		return b
	}
	return domain.CashBalance{DeskID: deskID, CurrencyCode: currencyCode, Balance: decimal.Zero}
}

func (r *cashBalanceRepository) GetBalance(_ context.Context, deskID, currencyCode string) (domain.CashBalance, error) {
	var out domain.CashBalance
	err := r.view(func(s *state) error {
		out = s.balance(deskID, currencyCode)
		return nil
	})
	return out, err
}

func (r *cashBalanceRepository) ListBalances(_ context.Context, deskID string) ([]domain.CashBalance, error) {
	out := []domain.CashBalance{}
	err := r.view(func(s *state) error {
		for k, b := range s.balances {
			if k.deskID == deskID {
				out = append(out, b)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.CashBalance) int { return strings.Compare(a.CurrencyCode, b.CurrencyCode) })
	return out, err
}

func (r *cashBalanceRepository) ApplyDelta(_ context.Context, deskID, currencyCode string, delta decimal.Decimal, now time.Time) (domain.CashBalance, error) {
	var out domain.CashBalance
	err := r.view(func(s *state) error {
		current := s.balance(deskID, currencyCode)
		next := current.Balance.Add(delta)
		if next.IsNegative() {
			return fmt.Errorf("%w: desk %s holds %s %s, %s requested",
				apperrors.ErrInsufficientBalance, deskID, current.Balance.StringFixed(2), currencyCode, delta.Neg().StringFixed(2))
		}
		current.Balance = next
		current.LastUpdatedAt = now
		s.balances[cellKey{deskID, currencyCode}] = current
		out = current
		return nil
	})
	return out, err
}

func (r *cashBalanceRepository) SetBalance(_ context.Context, deskID, currencyCode string, amount decimal.Decimal, now time.Time) (domain.CashBalance, error) {
	out := domain.CashBalance{DeskID: deskID, CurrencyCode: currencyCode, Balance: amount, LastUpdatedAt: now}
	err := r.view(func(s *state) error {
		s.balances[cellKey{deskID, currencyCode}] = out
		return nil
	})
	return out, err
}
