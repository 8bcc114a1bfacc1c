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

type PgxBalanceCheckRepository struct {
	BaseRepository
}

var _ portsrepo.BalanceCheckRepositoryFacade = (*PgxBalanceCheckRepository)(nil)

const checkSelect = `
SELECT check_id, session_id, user_id, desk_id, currency_code, system_balance, physical_balance,
	difference, checked, confirmed, closed, recorded_shrinkage, note, created_at, last_updated_at
FROM balance_checks
`

func (r *PgxBalanceCheckRepository) getChecks(ctx context.Context, filterQuery string, args ...any) ([]domain.BalanceCheck, error) {
	rows, err := r.DB.Query(ctx, checkSelect+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query balance checks", err)
	}
	checks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BalanceCheck])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect balance check rows", err)
	}
	return mapping.ToDomainBalanceCheckSlice(checks), nil
}

func (r *PgxBalanceCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.BalanceCheck, error) {
	checks, err := r.getChecks(ctx, `WHERE check_id = $1`+r.lockClause(), checkID)
	if err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		return nil, fmt.Errorf("%w: balance check %s", apperrors.ErrNotFound, checkID)
	}
	return &checks[0], nil
}

func (r *PgxBalanceCheckRepository) ListChecksBySession(ctx context.Context, sessionID string) ([]domain.BalanceCheck, error) {
	return r.getChecks(ctx, `WHERE session_id = $1 ORDER BY currency_code`+r.lockClause(), sessionID)
}

func (r *PgxBalanceCheckRepository) SaveChecks(ctx context.Context, checks []domain.BalanceCheck) error {
	if len(checks) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range checks {
		m := mapping.ToModelBalanceCheck(c)
		batch.Queue(`
			INSERT INTO balance_checks (
				check_id, session_id, user_id, desk_id, currency_code, system_balance, physical_balance,
				difference, checked, confirmed, closed, recorded_shrinkage, note, created_at, last_updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
			m.CheckID, m.SessionID, m.UserID, m.DeskID, m.CurrencyCode, m.SystemBalance, m.PhysicalBalance,
			m.Difference, m.Checked, m.Confirmed, m.Closed, m.RecordedShrinkage, m.Note, m.CreatedAt, m.LastUpdatedAt,
		)
	}
	return execBatch(ctx, r.DB, batch, "balance checks of session "+checks[0].SessionID)
}

func (r *PgxBalanceCheckRepository) UpdateCheck(ctx context.Context, check domain.BalanceCheck) error {
	m := mapping.ToModelBalanceCheck(check)
	tag, err := r.DB.Exec(ctx, `
		UPDATE balance_checks SET
			physical_balance = $2, difference = $3, checked = $4, confirmed = $5, closed = $6,
			recorded_shrinkage = $7, note = $8, last_updated_at = $9
		WHERE check_id = $1;`,
		m.CheckID, m.PhysicalBalance, m.Difference, m.Checked, m.Confirmed, m.Closed,
		m.RecordedShrinkage, m.Note, m.LastUpdatedAt,
	)
	if err != nil {
		return internalError("failed to update balance check "+check.CheckID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: balance check %s", apperrors.ErrNotFound, check.CheckID)
	}
	return nil
}
