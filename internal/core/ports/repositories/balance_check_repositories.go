package repositories

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
)

// BalanceCheckReader defines read operations for balance checks
type BalanceCheckReader interface {
	FindCheckByID(ctx context.Context, checkID string) (*domain.BalanceCheck, error)
	ListChecksBySession(ctx context.Context, sessionID string) ([]domain.BalanceCheck, error)
}

// BalanceCheckWriter defines write operations for balance checks. Checks are never deleted.
type BalanceCheckWriter interface {
	SaveChecks(ctx context.Context, checks []domain.BalanceCheck) error
	UpdateCheck(ctx context.Context, check domain.BalanceCheck) error
}

// BalanceCheckRepositoryFacade combines all balance check operations.
type BalanceCheckRepositoryFacade interface {
	BalanceCheckReader
	BalanceCheckWriter
}
