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

type PgxTransferRepository struct {
	BaseRepository
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const lineSelect = `
SELECT line_id, transfer_id, sender_desk_id, receiver_desk_id, currency_code, amount, sent_by, sent_to,
	status_source, status_destination, source_time, destination_time, sender_refunded, last_updated_at
FROM transfer_lines
`

func (r *PgxTransferRepository) getLines(ctx context.Context, filterQuery string, args ...any) ([]models.TransferLine, error) {
	rows, err := r.DB.Query(ctx, lineSelect+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query transfer lines", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransferLine])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect transfer line rows", err)
	}
	return lines, nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT transfer_id, origin, operation_id, sender_desk_id, created_by, created_at
		FROM transfers WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return nil, internalError("failed to query transfer "+transferID, err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transfer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
		}
		return nil, internalError("failed to scan transfer "+transferID, err)
	}
	lines, err := r.getLines(ctx, `WHERE transfer_id = $1 ORDER BY line_id`, transferID)
	if err != nil {
		return nil, err
	}
	t := mapping.ToDomainTransfer(header, lines)
	return &t, nil
}

func (r *PgxTransferRepository) FindLineByID(ctx context.Context, lineID string) (*domain.TransferLine, error) {
	lines, err := r.getLines(ctx, `WHERE line_id = $1`+r.lockClause(), lineID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: transfer line %s", apperrors.ErrNotFound, lineID)
	}
	line := mapping.ToDomainTransferLine(lines[0])
	return &line, nil
}

func (r *PgxTransferRepository) ListLinesByUser(ctx context.Context, userID string) ([]domain.TransferLine, error) {
	lines, err := r.getLines(ctx, `WHERE sent_by = $1 OR sent_to = $1 ORDER BY source_time DESC, line_id`, userID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransferLineSlice(lines), nil
}

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	header := mapping.ToModelTransfer(transfer)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO transfers (transfer_id, origin, operation_id, sender_desk_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		header.TransferID, header.Origin, header.OperationID, header.SenderDeskID, header.CreatedBy, header.CreatedAt,
	)
	for _, l := range transfer.Lines {
		m := mapping.ToModelTransferLine(l)
		batch.Queue(`
			INSERT INTO transfer_lines (
				line_id, transfer_id, sender_desk_id, receiver_desk_id, currency_code, amount, sent_by, sent_to,
				status_source, status_destination, source_time, destination_time, sender_refunded, last_updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
			m.LineID, m.TransferID, m.SenderDeskID, m.ReceiverDeskID, m.CurrencyCode, m.Amount, m.SentBy, m.SentTo,
			m.StatusSource, m.StatusDestination, m.SourceTime, m.DestinationTime, m.SenderRefunded, m.LastUpdatedAt,
		)
	}
	return execBatch(ctx, r.DB, batch, "transfer "+transfer.TransferID)
}

func (r *PgxTransferRepository) UpdateLine(ctx context.Context, line domain.TransferLine) error {
	m := mapping.ToModelTransferLine(line)
	tag, err := r.DB.Exec(ctx, `
		UPDATE transfer_lines SET
			receiver_desk_id = $2, sent_to = $3, status_source = $4, status_destination = $5,
			source_time = $6, destination_time = $7, sender_refunded = $8, last_updated_at = $9
		WHERE line_id = $1;`,
		m.LineID, m.ReceiverDeskID, m.SentTo, m.StatusSource, m.StatusDestination,
		m.SourceTime, m.DestinationTime, m.SenderRefunded, m.LastUpdatedAt,
	)
	if err != nil {
		return internalError("failed to update transfer line "+line.LineID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer line %s", apperrors.ErrNotFound, line.LineID)
	}
	return nil
}
