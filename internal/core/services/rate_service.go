package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/core/ports"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/utils/conversion"
)

// rateService prices base-anchored pairs from the official rate.
type rateService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
	provider     ports.RateProvider
	policy       conversion.RatePolicy
}

// NewRateService creates the rate engine service.
func NewRateService(currencyRepo portsrepo.CurrencyReader, provider ports.RateProvider, policy conversion.RatePolicy, opts ...Option) portssvc.RateSvc {
	return &rateService{
		BaseService:  newBaseService(opts...),
		currencyRepo: currencyRepo,
		provider:     provider,
		policy:       policy,
	}
}

var _ portssvc.RateSvc = (*rateService)(nil)

// pair loads both currencies and checks that exactly one of them is the base currency.
func (s *rateService) pair(ctx context.Context, sourceCode, targetCode string) (source, target *domain.Currency, err error) {
	if sourceCode == targetCode {
		s.Emit(ctx, domain.EventIdenticalCurrencies, domain.SeverityWarning, "Identical currencies",
			fmt.Sprintf("cannot convert %s into itself", sourceCode))
		return nil, nil, fmt.Errorf("%w (%s)", apperrors.ErrIdenticalCurrencies, sourceCode)
	}

	source, err = s.currencyRepo.FindCurrencyByCode(ctx, sourceCode)
	if err != nil {
		return nil, nil, err
	}
	target, err = s.currencyRepo.FindCurrencyByCode(ctx, targetCode)
	if err != nil {
		return nil, nil, err
	}

	for _, c := range []*domain.Currency{source, target} {
		if !c.IsActive {
			return nil, nil, fmt.Errorf("%w: currency %s is not active", apperrors.ErrValidation, c.CurrencyCode)
		}
	}

	if !source.IsBase && !target.IsBase {
		s.Emit(ctx, domain.EventCrossConversion, domain.SeverityWarning, "Cross conversion not supported",
			fmt.Sprintf("convert %s and %s through the base currency in two lines", sourceCode, targetCode))
		return nil, nil, fmt.Errorf("%w (%s/%s)", apperrors.ErrCrossConversion, sourceCode, targetCode)
	}
	return source, target, nil
}

func (s *rateService) GetRates(ctx context.Context, sourceCode, targetCode string, discount int) (*domain.RateQuote, error) {
	source, target, err := s.pair(ctx, sourceCode, targetCode)
	if err != nil {
		return nil, err
	}
	if err := s.policy.ValidateDiscount(discount); err != nil {
		return nil, err
	}

	base, foreign := source, target
	if !source.IsBase {
		base, foreign = target, source
	}

	official, err := s.provider.LookupRate(ctx, base.RateSymbol, foreign.RateSymbol)
	if err != nil {
		s.LogError(ctx, err, "Official rate lookup failed",
			slog.String("base", base.RateSymbol),
			slog.String("quote", foreign.RateSymbol))
		if errors.Is(err, apperrors.ErrUpstream) {
			return nil, fmt.Errorf("rate %s/%s: %w", base.RateSymbol, foreign.RateSymbol, err)
		}
		return nil, fmt.Errorf("%w: rate %s/%s: %v", apperrors.ErrUpstream, base.RateSymbol, foreign.RateSymbol, err)
	}

	rates, err := s.policy.Compute(official, discount)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Rates computed",
		slog.String("source", sourceCode),
		slog.String("target", targetCode),
		slog.Int("discount", discount),
		slog.String("base_rate", rates.BaseRate.String()))

	return &domain.RateQuote{
		SourceCurrency:  source.CurrencyCode,
		TargetCurrency:  target.CurrencyCode,
		ForeignCurrency: foreign.CurrencyCode,
		SourceIsBase:    source.IsBase,
		Discount:        discount,
		Rates:           rates,
	}, nil
}
