package services

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// CashLedgerReaderSvc reads desk balances.
type CashLedgerReaderSvc interface {
	GetBalance(ctx context.Context, deskID, currencyCode string) (domain.CashBalance, error)
	ListBalances(ctx context.Context, deskID string) ([]domain.CashBalance, error)
}

// CashLedgerWriterSvc holds the only mutation points of desk balances.
type CashLedgerWriterSvc interface {
	// Debit fails with apperrors.ErrInsufficientBalance when the balance would go negative.
	Debit(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal) (domain.CashBalance, error)
	Credit(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal) (domain.CashBalance, error)
	// Set overwrites the balance with a physical count. Reconciliation only.
	Set(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal) (domain.CashBalance, error)
}

// CashLedgerSvcFacade combines balance reads and writes.
type CashLedgerSvcFacade interface {
	CashLedgerReaderSvc
	CashLedgerWriterSvc

	// WithRepository returns a ledger bound to repo, typically a transaction-scoped repository.
	WithRepository(repo portsrepo.CashBalanceRepositoryFacade) CashLedgerSvcFacade
}
