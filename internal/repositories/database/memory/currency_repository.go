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

type currencyRepository struct {
	baseRepository
}

var _ portsrepo.CurrencyRepositoryFacade = (*currencyRepository)(nil)

func (r *currencyRepository) SaveCurrency(_ context.Context, currency domain.Currency) error {
	return r.view(func(s *state) error {
		if _, exists := s.currencies[currency.CurrencyCode]; exists {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.CurrencyCode)
		}
		if currency.IsBase {
			for _, c := range s.currencies {
				if c.IsBase {
					return fmt.Errorf("%w: base currency already set to %s", apperrors.ErrDuplicate, c.CurrencyCode)
				}
			}
		}
		currency.Denominations = slices.Clone(currency.Denominations)
		s.currencies[currency.CurrencyCode] = currency
		return nil
	})
}

func (r *currencyRepository) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	var found domain.Currency
	err := r.view(func(s *state) error {
		c, ok := s.currencies[currencyCode]
		if !ok {
			return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyCode)
		}
		found = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *currencyRepository) FindBaseCurrency(_ context.Context) (*domain.Currency, error) {
	var found *domain.Currency
	err := r.view(func(s *state) error {
		for _, c := range s.currencies {
			if c.IsBase {
				found = &c
				return nil
			}
		}
		return fmt.Errorf("%w: no base currency configured", apperrors.ErrNotFound)
	})
	return found, err
}

func (r *currencyRepository) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	var out []domain.Currency
	err := r.view(func(s *state) error {
		out = make([]domain.Currency, 0, len(s.currencies))
		for _, c := range s.currencies {
			out = append(out, c)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Currency) int { return strings.Compare(a.CurrencyCode, b.CurrencyCode) })
	return out, err
}
