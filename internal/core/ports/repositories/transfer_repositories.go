package repositories

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
)

// TransferReader defines read operations for transfers
type TransferReader interface {
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	FindLineByID(ctx context.Context, lineID string) (*domain.TransferLine, error)

	// ListLinesByUser returns lines sent by or addressed to the user, newest first.
	ListLinesByUser(ctx context.Context, userID string) ([]domain.TransferLine, error)
}

// TransferWriter defines write operations for transfers
type TransferWriter interface {
	// SaveTransfer inserts the transfer and all of its lines.
	SaveTransfer(ctx context.Context, transfer domain.Transfer) error
	UpdateLine(ctx context.Context, line domain.TransferLine) error
}

// TransferRepositoryFacade combines all transfer operations.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
