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
)

// conversionService turns conversion requests into amounts payable on both legs.
type conversionService struct {
	BaseService
	repos  portsrepo.RepositoryProvider
	rates  portssvc.RateSvc
	solver conversion.Solver
}

func newConversionService(repos portsrepo.RepositoryProvider, rates portssvc.RateSvc, solver conversion.Solver, opts ...Option) *conversionService {
	return &conversionService{
		BaseService: newBaseService(opts...),
		repos:       repos,
		rates:       rates,
		solver:      solver,
	}
}

// NewConversionService creates the conversion solver service.
func NewConversionService(repos portsrepo.RepositoryProvider, rates portssvc.RateSvc, solver conversion.Solver, opts ...Option) portssvc.ConversionSvc {
	return newConversionService(repos, rates, solver, opts...)
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) Quote(ctx context.Context, req domain.ConversionRequest, deskID string) (*domain.ConversionResult, error) {
	if !conversion.RoundAmount(req.Amount).IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	quote, err := s.rates.GetRates(ctx, req.SourceCurrency, req.TargetCurrency, req.Discount)
	if err != nil {
		return nil, err
	}

	result, err := s.resolve(ctx, s.repos.CurrencyRepo, req, quote)
	if err != nil {
		return nil, err
	}

	if deskID != "" && !result.NeedsChoice {
		bal, err := s.repos.CashBalanceRepo.GetBalance(ctx, deskID, req.TargetCurrency)
		if err != nil {
			return nil, err
		}
		result.Availability = &domain.Availability{
			DeskID:    deskID,
			Balance:   bal.Balance,
			Available: bal.Balance.GreaterThanOrEqual(result.AmountDelivered),
		}
	}
	return result, nil
}

// resolve runs the solver for req at the quoted rates. currencies is passed explicitly so that
// settlement can resolve against repositories bound to its transaction.
func (s *conversionService) resolve(ctx context.Context, currencies portsrepo.CurrencyReader, req domain.ConversionRequest, quote *domain.RateQuote) (*domain.ConversionResult, error) {
	source, err := currencies.FindCurrencyByCode(ctx, req.SourceCurrency)
	if err != nil {
		return nil, err
	}
	target, err := currencies.FindCurrencyByCode(ctx, req.TargetCurrency)
	if err != nil {
		return nil, err
	}

	received := conversion.Side{Denominations: source.DenominationValues(), Adjust: req.PaymentType != domain.PaymentCard}
	delivered := conversion.Side{Denominations: target.DenominationValues(), Adjust: true}
	if received.Adjust && len(received.Denominations) == 0 {
		return nil, fmt.Errorf("%w for %s", apperrors.ErrNoDenominations, source.CurrencyCode)
	}
	if len(delivered.Denominations) == 0 {
		return nil, fmt.Errorf("%w for %s", apperrors.ErrNoDenominations, target.CurrencyCode)
	}

	forward, backward := conversion.Legs(quote.Rates, quote.SourceIsBase)
	problem := conversion.Problem{
		Anchor:    req.Anchor,
		Amount:    req.Amount,
		Received:  received,
		Delivered: delivered,
		Forward:   forward,
		Backward:  backward,
	}

	res, err := s.solver.Resolve(problem, req.Rounding)
	if err != nil {
		s.LogWarn(ctx, err, "Conversion could not be resolved",
			slog.String("source", req.SourceCurrency),
			slog.String("target", req.TargetCurrency),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	result := &domain.ConversionResult{
		SourceCurrency: req.SourceCurrency,
		TargetCurrency: req.TargetCurrency,
		Discount:       req.Discount,
		Anchor:         req.Anchor,
		PaymentType:    req.PaymentType,
		DeliveryType:   req.DeliveryType,
		Rates:          quote.Rates,
	}
	if res.NeedsChoice {
		result.NeedsChoice = true
		result.Under = &domain.ConversionCandidate{AmountReceived: res.Under.Received, AmountDelivered: res.Under.Delivered}
		result.Over = &domain.ConversionCandidate{AmountReceived: res.Over.Received, AmountDelivered: res.Over.Delivered}
		return result, nil
	}

	s.Metrics.ConvergenceIterations(res.Iterations)
	result.AmountReceived = res.Received
	result.AmountDelivered = res.Delivered
	result.Rounding = res.Direction
	result.Narrowed = res.Narrowed
	return result, nil
}
