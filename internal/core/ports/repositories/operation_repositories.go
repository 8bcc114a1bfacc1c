package repositories

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
)

// OperationReader defines read operations for settled operations
type OperationReader interface {
	FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error)
	ListOperationsBySession(ctx context.Context, sessionID string) ([]domain.Operation, error)
}

// OperationWriter defines write operations for settled operations
type OperationWriter interface {
	// SaveOperation inserts the operation and its lines. Operations are never updated.
	SaveOperation(ctx context.Context, operation domain.Operation) error
}

// OperationRepositoryFacade combines all operation operations.
type OperationRepositoryFacade interface {
	OperationReader
	OperationWriter
}
