package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/dto"
)

// currencyService owns the denomination catalog.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, opts ...Option) portssvc.CurrencySvcFacade {
	return &currencyService{BaseService: newBaseService(opts...), currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	if len(req.Denominations) == 0 {
		return nil, fmt.Errorf("%w for currency %s", apperrors.ErrNoDenominations, req.CurrencyCode)
	}

	denoms := make([]domain.Denomination, 0, len(req.Denominations))
	seen := make(map[string]bool, len(req.Denominations))
	for _, d := range req.Denominations {
		if !d.Value.IsPositive() {
			return nil, fmt.Errorf("%w: denomination %s of %s must be positive", apperrors.ErrValidation, d.Value, req.CurrencyCode)
		}
		key := d.Value.String()
		if seen[key] {
			return nil, fmt.Errorf("%w: denomination %s of %s is listed twice", apperrors.ErrValidation, key, req.CurrencyCode)
		}
		seen[key] = true
		denoms = append(denoms, domain.Denomination{CurrencyCode: req.CurrencyCode, Kind: domain.DenominationKind(d.Kind), Value: d.Value})
	}

	if req.IsBase {
		base, err := s.currencyRepo.FindBaseCurrency(ctx)
		if err == nil {
			return nil, fmt.Errorf("%w: %s is already the base currency", apperrors.ErrDuplicate, base.CurrencyCode)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	now := s.now()
	currency := domain.Currency{
		CurrencyCode:  req.CurrencyCode,
		Name:          req.Name,
		RateSymbol:    req.RateSymbol,
		IsBase:        req.IsBase,
		IsActive:      true,
		Denominations: denoms,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", req.CurrencyCode))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "Currency created",
		slog.String("currency_code", currency.CurrencyCode),
		slog.Int("denominations", len(denoms)),
		slog.Bool("is_base", currency.IsBase))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get base currency: %w", err)
	}
	return currency, nil
}
