package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashBalanceReader defines read operations for desk balances.
type CashBalanceReader interface {
	// GetBalance returns the balance of a cell, zero when it was never touched.
	GetBalance(ctx context.Context, deskID, currencyCode string) (domain.CashBalance, error)

	// ListBalances returns every recorded balance of a desk.
	ListBalances(ctx context.Context, deskID string) ([]domain.CashBalance, error)
}

// CashBalanceWriter defines the only two ways a balance can change.
type CashBalanceWriter interface {
	// ApplyDelta adds delta to the cell atomically. A result below zero is rejected with
	// apperrors.ErrInsufficientBalance and leaves the cell untouched.
	ApplyDelta(ctx context.Context, deskID, currencyCode string, delta decimal.Decimal, now time.Time) (domain.CashBalance, error)

	// SetBalance overwrites the cell.
	SetBalance(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal, now time.Time) (domain.CashBalance, error)
}

// CashBalanceRepositoryFacade combines all balance operations.
type CashBalanceRepositoryFacade interface {
	CashBalanceReader
	CashBalanceWriter
}
