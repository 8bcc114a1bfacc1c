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
	"github.com/SscSPs/forexdesk/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// cashLedgerService is the only code path that changes desk balances.
type cashLedgerService struct {
	BaseService
	balanceRepo portsrepo.CashBalanceRepositoryFacade
}

// NewCashLedgerService creates the cash ledger.
func NewCashLedgerService(balanceRepo portsrepo.CashBalanceRepositoryFacade, opts ...Option) portssvc.CashLedgerSvcFacade {
	return &cashLedgerService{BaseService: newBaseService(opts...), balanceRepo: balanceRepo}
}

var _ portssvc.CashLedgerSvcFacade = (*cashLedgerService)(nil)

func (s *cashLedgerService) WithRepository(repo portsrepo.CashBalanceRepositoryFacade) portssvc.CashLedgerSvcFacade {
	return &cashLedgerService{BaseService: s.BaseService, balanceRepo: repo}
}

func (s *cashLedgerService) GetBalance(ctx context.Context, deskID, currencyCode string) (domain.CashBalance, error) {
	return s.balanceRepo.GetBalance(ctx, deskID, currencyCode)
}

func (s *cashLedgerService) ListBalances(ctx context.Context, deskID string) ([]domain.CashBalance, error) {
	balances, err := s.balanceRepo.ListBalances(ctx, deskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances of desk %s: %w", deskID, err)
	}
	return balances, nil
}

func positiveAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = conversion.RoundAmount(amount)
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	return amount, nil
}

func (s *cashLedgerService) Debit(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal) (domain.CashBalance, error) {
	amount, err := positiveAmount(amount)
	if err != nil {
		return domain.CashBalance{}, err
	}
	bal, err := s.balanceRepo.ApplyDelta(ctx, deskID, currencyCode, amount.Neg(), s.now())
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.LogWarn(ctx, err, "Debit rejected",
				slog.String("desk_id", deskID),
				slog.String("currency", currencyCode),
				slog.String("amount", amount.StringFixed(2)))
			s.Emit(ctx, domain.EventInsufficientBalance, domain.SeverityDanger, "Insufficient balance", err.Error())
		}
		return domain.CashBalance{}, err
	}
	s.LogDebug(ctx, "Balance debited",
		slog.String("desk_id", deskID),
		slog.String("currency", currencyCode),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance", bal.Balance.StringFixed(2)))
	return bal, nil
}

func (s *cashLedgerService) Credit(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal) (domain.CashBalance, error) {
	amount, err := positiveAmount(amount)
	if err != nil {
		return domain.CashBalance{}, err
	}
	bal, err := s.balanceRepo.ApplyDelta(ctx, deskID, currencyCode, amount, s.now())
	if err != nil {
		return domain.CashBalance{}, err
	}
	s.LogDebug(ctx, "Balance credited",
		slog.String("desk_id", deskID),
		slog.String("currency", currencyCode),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance", bal.Balance.StringFixed(2)))
	return bal, nil
}

func (s *cashLedgerService) Set(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal) (domain.CashBalance, error) {
	amount = conversion.RoundAmount(amount)
	if amount.IsNegative() {
		return domain.CashBalance{}, fmt.Errorf("%w: physical balance cannot be negative", apperrors.ErrValidation)
	}
	bal, err := s.balanceRepo.SetBalance(ctx, deskID, currencyCode, amount, s.now())
	if err != nil {
		return domain.CashBalance{}, err
	}
	s.LogInfo(ctx, "Balance overwritten by physical count",
		slog.String("desk_id", deskID),
		slog.String("currency", currencyCode),
		slog.String("balance", bal.Balance.StringFixed(2)))
	return bal, nil
}
