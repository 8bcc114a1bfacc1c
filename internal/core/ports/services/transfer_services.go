package services

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/dto"
)

// TransferReaderSvc defines read operations for transfers
type TransferReaderSvc interface {
	GetTransfer(ctx context.Context, transferID string) (*domain.Transfer, error)
	// ListLines returns the lines the user sent or that are addressed to the user.
	ListLines(ctx context.Context, userID string) ([]domain.TransferLine, error)
}

// TransferWriterSvc drives the transfer line state machine.
type TransferWriterSvc interface {
	Create(ctx context.Context, sc domain.SessionContext, req dto.CreateTransferRequest) (*domain.Transfer, error)
	Cancel(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error)
	Receive(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error)
	Reject(ctx context.Context, sc domain.SessionContext, lineID string) (*domain.TransferLine, error)
	// Redirect moves a pending line to another receiver desk. Administrators only.
	Redirect(ctx context.Context, sc domain.SessionContext, lineID, receiverDeskID string) (*domain.TransferLine, error)
}

// TransferSvcFacade combines all transfer operations.
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}

// OperationSvcFacade settles conversion operations against the cash ledger.
type OperationSvcFacade interface {
	Settle(ctx context.Context, sc domain.SessionContext, req dto.SettleOperationRequest) (*domain.Operation, error)
	GetOperation(ctx context.Context, operationID string) (*domain.Operation, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Operation, error)
}
