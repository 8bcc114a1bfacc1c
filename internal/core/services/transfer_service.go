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
)

// transferService moves cash between desks. Money leaves the sender when a line is created
// and reaches the receiver only when the line is received.
type transferService struct {
	BaseService
	repos               portsrepo.RepositoryProvider
	ledger              portssvc.CashLedgerSvcFacade
	rejectRefundsSender bool
}

func newTransferService(repos portsrepo.RepositoryProvider, ledger portssvc.CashLedgerSvcFacade, rejectRefundsSender bool, opts ...Option) *transferService {
	return &transferService{
		BaseService:         newBaseService(opts...),
		repos:               repos,
		ledger:              ledger,
		rejectRefundsSender: rejectRefundsSender,
	}
}

// NewTransferService creates the transfer service. When rejectRefundsSender is set, a
// rejected line is credited back to the sender desk.
func NewTransferService(repos portsrepo.RepositoryProvider, ledger portssvc.CashLedgerSvcFacade, rejectRefundsSender bool, opts ...Option) portssvc.TransferSvcFacade {
	return newTransferService(repos, ledger, rejectRefundsSender, opts...)
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func workcenterOf(ctx context.Context, repos portsrepo.RepositoryProvider, deskID string) (*domain.Workcenter, error) {
	desk, err := repos.DeskRepo.FindDeskByID(ctx, deskID)
	if err != nil {
		return nil, err
	}
	return repos.DeskRepo.FindWorkcenterByID(ctx, desk.WorkcenterID)
}

// senderSession returns the caller's opening checkin, which must be able to move money.
func senderSession(ctx context.Context, repos portsrepo.RepositoryProvider, sc domain.SessionContext) (*domain.WorkSession, error) {
	opening, err := repos.WorkSessionRepo.FindOpenOpeningCheckin(ctx, sc.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if !operational(opening) {
		return nil, apperrors.ErrNotReconciled
	}
	if opening.DeskID != sc.OpeningDeskID {
		return nil, fmt.Errorf("%w: session context points at desk %s, opening desk is %s", apperrors.ErrInvalidState, sc.OpeningDeskID, opening.DeskID)
	}
	return opening, nil
}

// receiverClaim returns the opening checkin holding the receiver desk, which must be able to
// take currencyCode.
func receiverClaim(ctx context.Context, repos portsrepo.RepositoryProvider, deskID, currencyCode string) (*domain.WorkSession, error) {
	claim, err := repos.WorkSessionRepo.FindDeskClaim(ctx, deskID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if !operational(claim) {
		return nil, fmt.Errorf("%w (%s)", apperrors.ErrDestinationNotReconciled, deskID)
	}
	wc, err := workcenterOf(ctx, repos, deskID)
	if err != nil {
		return nil, err
	}
	if !wc.Accepts(currencyCode) {
		return nil, fmt.Errorf("%w: desk %s does not accept %s", apperrors.ErrValidation, deskID, currencyCode)
	}
	return claim, nil
}

// createWithin debits the sender and records the transfer using the transaction's repositories.
func (s *transferService) createWithin(ctx context.Context, repos portsrepo.RepositoryProvider, sc domain.SessionContext, req dto.CreateTransferRequest, origin domain.TransferOrigin, operationID *string, transferID string) (*domain.Transfer, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: transfer has no lines", apperrors.ErrValidation)
	}
	if _, err := senderSession(ctx, repos, sc); err != nil {
		return nil, err
	}
	senderWC, err := workcenterOf(ctx, repos, sc.OpeningDeskID)
	if err != nil {
		return nil, err
	}

	ledger := s.ledger.WithRepository(repos.CashBalanceRepo)
	now := s.now()
	transfer := domain.Transfer{
		TransferID:   transferID,
		Origin:       origin,
		OperationID:  operationID,
		SenderDeskID: sc.OpeningDeskID,
		CreatedBy:    sc.UserID,
		CreatedAt:    now,
		Lines:        make([]domain.TransferLine, 0, len(req.Lines)),
	}

	for _, l := range req.Lines {
		currency, err := repos.CurrencyRepo.FindCurrencyByCode(ctx, l.CurrencyCode)
		if err != nil {
			return nil, err
		}
		if !currency.IsActive {
			return nil, fmt.Errorf("%w: currency %s is not active", apperrors.ErrValidation, l.CurrencyCode)
		}
		if !senderWC.Accepts(l.CurrencyCode) {
			return nil, fmt.Errorf("%w: desk %s does not accept %s", apperrors.ErrValidation, sc.OpeningDeskID, l.CurrencyCode)
		}
		amount := conversion.RoundAmount(l.Amount)
		if !amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		if l.ReceiverDeskID == sc.OpeningDeskID {
			return nil, fmt.Errorf("%w: cannot transfer to the sender desk", apperrors.ErrValidation)
		}
		claim, err := receiverClaim(ctx, repos, l.ReceiverDeskID, l.CurrencyCode)
		if err != nil {
			return nil, err
		}

		if _, err := ledger.Debit(ctx, sc.OpeningDeskID, l.CurrencyCode, amount); err != nil {
			return nil, err
		}
		transfer.Lines = append(transfer.Lines, domain.TransferLine{
			LineID:            uuid.NewString(),
			TransferID:        transferID,
			SenderDeskID:      sc.OpeningDeskID,
			ReceiverDeskID:    l.ReceiverDeskID,
			CurrencyCode:      l.CurrencyCode,
			Amount:            amount,
			SentBy:            sc.UserID,
			SentTo:            claim.UserID,
			StatusSource:      domain.SourceSent,
			StatusDestination: domain.DestinationPending,
			SourceTime:        now,
			LastUpdatedAt:     now,
		})
	}

	if err := repos.TransferRepo.SaveTransfer(ctx, transfer); err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (s *transferService) Create(ctx context.Context, sc domain.SessionContext, req dto.CreateTransferRequest) (*domain.Transfer, error) {
	var created *domain.Transfer
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		t, err := s.createWithin(ctx, repos, sc, req, domain.TransferStandalone, nil, uuid.NewString())
		created = t
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Transfer refused", slog.String("desk_id", sc.OpeningDeskID))
		return nil, err
	}
	for range created.Lines {
		s.Metrics.TransferTransition("created")
	}
	s.LogInfo(ctx, "Transfer created",
		slog.String("transfer_id", created.TransferID),
		slog.Int("lines", len(created.Lines)))
	return created, nil
}

// updateLine loads a line inside a transaction, lets fn transition it and persists it.
func (s *transferService) updateLine(ctx context.Context, lineID, transition string, fn func(ctx context.Context, repos portsrepo.RepositoryProvider, line *domain.TransferLine) error) (*domain.TransferLine, error) {
	var updated domain.TransferLine
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		line, err := repos.TransferRepo.FindLineByID(ctx, lineID)
		if err != nil {
			return err
		}
		if err := fn(ctx, repos, line); err != nil {
			return err
		}
		line.LastUpdatedAt = s.now()
		updated = *line
		return repos.TransferRepo.UpdateLine(ctx, *line)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Transfer line transition refused",
			slog.String("line_id", lineID),
			slog.String("transition", transition))
		return nil, err
	}
	s.Metrics.TransferTransition(transition)
	s.LogInfo(ctx, "Transfer line updated",
		slog.String("line_id", lineID),
		slog.String("transition", transition))
	return &updated, nil
}

func requirePending(line *domain.TransferLine) error {
	if !line.IsPending() {
		return fmt.Errorf("%w: line %s is %s/%s", apperrors.ErrInvalidState, line.LineID, line.StatusSource, line.StatusDestination)
	}
	return nil
}

// Cancel withdraws a pending line and refunds the sender desk.
func (s *transferService) Cancel(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error) {
	return s.updateLine(ctx, lineID, "cancelled", func(ctx context.Context, repos portsrepo.RepositoryProvider, line *domain.TransferLine) error {
		if line.SentBy != sc.UserID {
			return fmt.Errorf("%w: only the sender can cancel line %s", apperrors.ErrForbidden, line.LineID)
		}
		if err := requirePending(line); err != nil {
			return err
		}
		if _, err := senderSession(ctx, repos, sc); err != nil {
			return err
		}
		if _, err := s.ledger.WithRepository(repos.CashBalanceRepo).Credit(ctx, line.SenderDeskID, line.CurrencyCode, line.Amount); err != nil {
			return err
		}
		line.StatusSource = domain.SourceCancelled
		line.StatusDestination = domain.DestinationCancelled
		line.SenderRefunded = true
		return nil
	})
}

// receiverOf checks that the caller currently holds the line's receiver desk.
func receiverOf(ctx context.Context, repos portsrepo.RepositoryProvider, sc domain.SessionContext, line *domain.TransferLine) error {
	claim, err := repos.WorkSessionRepo.FindDeskClaim(ctx, line.ReceiverDeskID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if claim == nil || claim.UserID != sc.UserID {
		return fmt.Errorf("%w: desk %s is not held by the caller", apperrors.ErrForbidden, line.ReceiverDeskID)
	}
	if !operational(claim) {
		return fmt.Errorf("%w (%s)", apperrors.ErrDestinationNotReconciled, line.ReceiverDeskID)
	}
	return nil
}

// Receive credits the receiver desk with a pending line.
func (s *transferService) Receive(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error) {
	return s.updateLine(ctx, lineID, "received", func(ctx context.Context, repos portsrepo.RepositoryProvider, line *domain.TransferLine) error {
		if err := requirePending(line); err != nil {
			return err
		}
		if err := receiverOf(ctx, repos, sc, line); err != nil {
			return err
		}
		if _, err := s.ledger.WithRepository(repos.CashBalanceRepo).Credit(ctx, line.ReceiverDeskID, line.CurrencyCode, line.Amount); err != nil {
			return err
		}
		now := s.now()
		line.StatusDestination = domain.DestinationReceived
		line.DestinationTime = &now
		line.SentTo = sc.UserID
		return nil
	})
}

// refundable checks that the sender desk can take the line back. A desk that is reconciling
// for checkout, or not held at all, keeps its ledger frozen, so the line stays pending.
func refundable(ctx context.Context, repos portsrepo.RepositoryProvider, line *domain.TransferLine) error {
	claim, err := repos.WorkSessionRepo.FindDeskClaim(ctx, line.SenderDeskID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if !operational(claim) {
		return fmt.Errorf("%w: sender desk %s cannot be refunded until it is reopened and reconciled", apperrors.ErrInvalidState, line.SenderDeskID)
	}
	return nil
}

// Reject refuses a pending line at the receiver desk. With refunds enabled the sender desk
// must be operational.
func (s *transferService) Reject(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error) {
	return s.updateLine(ctx, lineID, "rejected", func(ctx context.Context, repos portsrepo.RepositoryProvider, line *domain.TransferLine) error {
		if err := requirePending(line); err != nil {
			return err
		}
		if err := receiverOf(ctx, repos, sc, line); err != nil {
			return err
		}
		if s.rejectRefundsSender {
			if err := refundable(ctx, repos, line); err != nil {
				return err
			}
		}
		now := s.now()
		line.StatusDestination = domain.DestinationCancelled
		line.DestinationTime = &now
		if !s.rejectRefundsSender {
			return nil
		}
		if _, err := s.ledger.WithRepository(repos.CashBalanceRepo).Credit(ctx, line.SenderDeskID, line.CurrencyCode, line.Amount); err != nil {
			return err
		}
		line.SenderRefunded = true
		return nil
	})
}

func (s *transferService) Redirect(ctx context.Context, sc domain.SessionContext, lineID, receiverDeskID string) (*domain.TransferLine, error) {
	if !sc.IsAdmin {
		return nil, fmt.Errorf("%w: redirecting transfers requires an administrator", apperrors.ErrForbidden)
	}
	return s.updateLine(ctx, lineID, "redirected", func(ctx context.Context, repos portsrepo.RepositoryProvider, line *domain.TransferLine) error {
		if err := requirePending(line); err != nil {
			return err
		}
		if receiverDeskID == line.SenderDeskID {
			return fmt.Errorf("%w: cannot redirect a line to its sender desk", apperrors.ErrValidation)
		}
		claim, err := receiverClaim(ctx, repos, receiverDeskID, line.CurrencyCode)
		if err != nil {
			return err
		}
		line.ReceiverDeskID = receiverDeskID
		line.SentTo = claim.UserID
		line.SourceTime = s.now()
		line.DestinationTime = nil
		return nil
	})
}

func (s *transferService) GetTransfer(ctx context.Context, transferID string) (*domain.Transfer, error) {
	return s.repos.TransferRepo.FindTransferByID(ctx, transferID)
}

func (s *transferService) ListLines(ctx context.Context, userID string) ([]domain.TransferLine, error) {
	lines, err := s.repos.TransferRepo.ListLinesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer lines: %w", err)
	}
	return lines, nil
}
