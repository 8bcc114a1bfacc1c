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
	"github.com/SscSPs/forexdesk/internal/utils/conversion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// operationService settles conversion lines against the opening desk's ledger.
type operationService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	rates     portssvc.RateSvc
	conv      *conversionService
	ledger    portssvc.CashLedgerSvcFacade
	transfers *transferService
}

func newOperationService(repos portsrepo.RepositoryProvider, rates portssvc.RateSvc, conv *conversionService, ledger portssvc.CashLedgerSvcFacade, transfers *transferService, opts ...Option) *operationService {
	return &operationService{
		BaseService: newBaseService(opts...),
		repos:       repos,
		rates:       rates,
		conv:        conv,
		ledger:      ledger,
		transfers:   transfers,
	}
}

var _ portssvc.OperationSvcFacade = (*operationService)(nil)

type pairKey struct{ source, target string }

type quotedLine struct {
	line  dto.SettleLineRequest
	req   domain.ConversionRequest
	quote *domain.RateQuote
}

func matchesExpected(expected *decimal.Decimal, actual decimal.Decimal) bool {
	return expected == nil || conversion.RoundAmount(*expected).Equal(actual)
}

func (s *operationService) Settle(ctx context.Context, sc domain.SessionContext, req dto.SettleOperationRequest) (*domain.Operation, error) {
	op, err := s.settle(ctx, sc, req)
	if err != nil {
		s.Metrics.SettlementRecorded("rejected")
		s.LogWarn(ctx, err, "Settlement rejected", slog.String("session_id", sc.SessionID))
		return nil, err
	}
	s.Metrics.SettlementRecorded("committed")
	s.LogInfo(ctx, "Operation settled",
		slog.String("operation_id", op.OperationID),
		slog.String("desk_id", op.DeskID),
		slog.Int("lines", len(op.Lines)))
	return op, nil
}

func (s *operationService) settle(ctx context.Context, sc domain.SessionContext, req dto.SettleOperationRequest) (*domain.Operation, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: operation has no lines", apperrors.ErrValidation)
	}

	// Rates come from outside the store, so every line is priced before the transaction starts.
	quoted := make([]quotedLine, 0, len(req.Lines))
	seen := make(map[pairKey]bool, len(req.Lines))
	for _, l := range req.Lines {
		cr := l.ToDomain()
		key := pairKey{cr.SourceCurrency, cr.TargetCurrency}
		if seen[key] {
			s.Emit(ctx, domain.EventRepeatedLine, domain.SeverityWarning, "Repeated line",
				fmt.Sprintf("%s to %s appears more than once, merge the amounts into one line", key.source, key.target))
			return nil, fmt.Errorf("%w (%s/%s)", apperrors.ErrRepeatedLine, key.source, key.target)
		}
		seen[key] = true
		if !conversion.RoundAmount(cr.Amount).IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		quote, err := s.rates.GetRates(ctx, cr.SourceCurrency, cr.TargetCurrency, cr.Discount)
		if err != nil {
			return nil, err
		}
		quoted = append(quoted, quotedLine{line: l, req: cr, quote: quote})
	}

	var op domain.Operation
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		opening, err := repos.WorkSessionRepo.FindOpenOpeningCheckin(ctx, sc.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if !operational(opening) {
			return apperrors.ErrNotReconciled
		}
		if opening.DeskID != sc.OpeningDeskID {
			return fmt.Errorf("%w: session context points at desk %s, opening desk is %s", apperrors.ErrInvalidState, sc.OpeningDeskID, opening.DeskID)
		}
		current, err := repos.WorkSessionRepo.FindSessionByID(ctx, sc.SessionID)
		if err != nil {
			return err
		}
		if current.UserID != sc.UserID || !current.IsOpen() {
			return fmt.Errorf("%w: session %s is not an open session of the caller", apperrors.ErrInvalidState, sc.SessionID)
		}
		wc, err := workcenterOf(ctx, repos, sc.OpeningDeskID)
		if err != nil {
			return err
		}

		ledger := s.ledger.WithRepository(repos.CashBalanceRepo)
		op = domain.Operation{
			OperationID:   uuid.NewString(),
			UserID:        sc.UserID,
			DeskID:        sc.OpeningDeskID,
			CurrentDeskID: sc.DeskID,
			SessionID:     sc.SessionID,
			CreatedAt:     s.now(),
			Lines:         make([]domain.OperationLine, 0, len(quoted)),
		}

		for _, q := range quoted {
			for _, code := range []string{q.req.SourceCurrency, q.req.TargetCurrency} {
				if !wc.Accepts(code) {
					return fmt.Errorf("%w: desk %s does not accept %s", apperrors.ErrValidation, sc.OpeningDeskID, code)
				}
			}
			res, err := s.conv.resolve(ctx, repos.CurrencyRepo, q.req, q.quote)
			if err != nil {
				return err
			}
			if res.NeedsChoice {
				return fmt.Errorf("%w (%s/%s)", apperrors.ErrRoundingChoiceRequired, q.req.SourceCurrency, q.req.TargetCurrency)
			}
			if !matchesExpected(q.line.ExpectedReceived, res.AmountReceived) || !matchesExpected(q.line.ExpectedDelivered, res.AmountDelivered) {
				return fmt.Errorf("%w: %s/%s amounts changed since the quote, quote again", apperrors.ErrConflict, q.req.SourceCurrency, q.req.TargetCurrency)
			}

			if q.req.PaymentType == domain.PaymentCash {
				if _, err := ledger.Credit(ctx, sc.OpeningDeskID, q.req.SourceCurrency, res.AmountReceived); err != nil {
					return err
				}
			}
			if _, err := ledger.Debit(ctx, sc.OpeningDeskID, q.req.TargetCurrency, res.AmountDelivered); err != nil {
				return err
			}

			op.Lines = append(op.Lines, domain.OperationLine{
				LineID:          uuid.NewString(),
				OperationID:     op.OperationID,
				SourceCurrency:  q.req.SourceCurrency,
				TargetCurrency:  q.req.TargetCurrency,
				Discount:        q.req.Discount,
				PaymentType:     q.req.PaymentType,
				DeliveryType:    q.req.DeliveryType,
				AmountReceived:  res.AmountReceived,
				AmountDelivered: res.AmountDelivered,
				Rounding:        res.Rounding,
				Rates:           res.Rates,
			})
		}

		if req.Transfer == nil {
			return repos.OperationRepo.SaveOperation(ctx, op)
		}

		// The transfer references the operation, so the operation row goes first.
		transferID := uuid.NewString()
		op.TransferID = &transferID
		if err := repos.OperationRepo.SaveOperation(ctx, op); err != nil {
			return err
		}
		_, err = s.transfers.createWithin(ctx, repos, sc, *req.Transfer, domain.TransferOperation, &op.OperationID, transferID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *operationService) GetOperation(ctx context.Context, operationID string) (*domain.Operation, error) {
	return s.repos.OperationRepo.FindOperationByID(ctx, operationID)
}

func (s *operationService) ListBySession(ctx context.Context, sessionID string) ([]domain.Operation, error) {
	ops, err := s.repos.OperationRepo.ListOperationsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations of session %s: %w", sessionID, err)
	}
	return ops, nil
}
