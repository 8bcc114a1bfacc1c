package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/SscSPs/forexdesk/internal/models"
	"github.com/SscSPs/forexdesk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxOperationRepository struct {
	BaseRepository
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

func (r *PgxOperationRepository) getOperations(ctx context.Context, filterQuery string, args ...any) ([]domain.Operation, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT operation_id, user_id, desk_id, current_desk_id, session_id, transfer_id, created_at
		FROM operations `+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query operations", err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Operation])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect operation rows", err)
	}
	if len(headers) == 0 {
		return []domain.Operation{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.OperationID
	}
	lineRows, err := r.DB.Query(ctx, `
		SELECT line_id, operation_id, source_currency, target_currency, discount, payment_type, delivery_type,
			amount_received, amount_delivered, rounding, buy_rate, sell_rate, base_rate
		FROM operation_lines WHERE operation_id = ANY($1) ORDER BY line_no;`, ids)
	if err != nil {
		return nil, internalError("failed to query operation lines", err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.OperationLine])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect operation line rows", err)
	}
	byOperation := make(map[string][]models.OperationLine, len(headers))
	for _, l := range lines {
		byOperation[l.OperationID] = append(byOperation[l.OperationID], l)
	}

	out := make([]domain.Operation, len(headers))
	for i, h := range headers {
		out[i] = mapping.ToDomainOperation(h, byOperation[h.OperationID])
	}
	return out, nil
}

func (r *PgxOperationRepository) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	ops, err := r.getOperations(ctx, `WHERE operation_id = $1`, operationID)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
	}
	return &ops[0], nil
}

func (r *PgxOperationRepository) ListOperationsBySession(ctx context.Context, sessionID string) ([]domain.Operation, error) {
	return r.getOperations(ctx, `WHERE session_id = $1 ORDER BY created_at`, sessionID)
}

func (r *PgxOperationRepository) SaveOperation(ctx context.Context, operation domain.Operation) error {
	header, lines := mapping.ToModelOperation(operation)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO operations (operation_id, user_id, desk_id, current_desk_id, session_id, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		header.OperationID, header.UserID, header.DeskID, header.CurrentDeskID, header.SessionID, header.TransferID, header.CreatedAt,
	)
	for i, l := range lines {
		batch.Queue(`
			INSERT INTO operation_lines (
				line_id, operation_id, line_no, source_currency, target_currency, discount, payment_type, delivery_type,
				amount_received, amount_delivered, rounding, buy_rate, sell_rate, base_rate
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
			l.LineID, l.OperationID, i, l.SourceCurrency, l.TargetCurrency, l.Discount, l.PaymentType, l.DeliveryType,
			l.AmountReceived, l.AmountDelivered, l.Rounding, l.BuyRate, l.SellRate, l.BaseRate,
		)
	}
	return execBatch(ctx, r.DB, batch, "operation "+operation.OperationID)
}
