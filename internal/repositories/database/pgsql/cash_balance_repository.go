package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/SscSPs/forexdesk/internal/models"
	"github.com/SscSPs/forexdesk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxCashBalanceRepository stores one row per (desk, currency) cell. Every write is a single
// statement, so the row lock taken by the write serializes concurrent updates of a cell.
type PgxCashBalanceRepository struct {
	BaseRepository
}

var _ portsrepo.CashBalanceRepositoryFacade = (*PgxCashBalanceRepository)(nil)

const balanceColumns = `desk_id, currency_code, balance, last_updated_at`

func (r *PgxCashBalanceRepository) GetBalance(ctx context.Context, deskID, currencyCode string) (domain.CashBalance, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+balanceColumns+` FROM cash_balances WHERE desk_id = $1 AND currency_code = $2;`, deskID, currencyCode)
	if err != nil {
		return domain.CashBalance{}, internalError("failed to query balance", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CashBalance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CashBalance{DeskID: deskID, CurrencyCode: currencyCode, Balance: decimal.Zero}, nil
		}
		return domain.CashBalance{}, internalError("failed to scan balance", err)
	}
	return mapping.ToDomainCashBalance(row), nil
}

func (r *PgxCashBalanceRepository) ListBalances(ctx context.Context, deskID string) ([]domain.CashBalance, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+balanceColumns+` FROM cash_balances WHERE desk_id = $1 ORDER BY currency_code;`, deskID)
	if err != nil {
		return nil, internalError("failed to query balances", err)
	}
	balances, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CashBalance])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect balance rows", err)
	}
	return mapping.ToDomainCashBalanceSlice(balances), nil
}

func (r *PgxCashBalanceRepository) returning(ctx context.Context, query string, args ...any) (domain.CashBalance, error) {
	rows, err := r.DB.Query(ctx, query+` RETURNING `+balanceColumns+`;`, args...)
	if err != nil {
		return domain.CashBalance{}, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CashBalance])
	if err != nil {
		return domain.CashBalance{}, err
	}
	return mapping.ToDomainCashBalance(row), nil
}

// ApplyDelta adds delta to a cell. Credits upsert; debits only update when the result stays
// non-negative, which the CHECK constraint on the table enforces as well.
func (r *PgxCashBalanceRepository) ApplyDelta(ctx context.Context, deskID, currencyCode string, delta decimal.Decimal, now time.Time) (domain.CashBalance, error) {
	if !delta.IsNegative() {
		bal, err := r.returning(ctx, `
			INSERT INTO cash_balances (desk_id, currency_code, balance, last_updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (desk_id, currency_code) DO UPDATE SET
				balance = cash_balances.balance + EXCLUDED.balance,
				last_updated_at = EXCLUDED.last_updated_at`,
			deskID, currencyCode, delta, now)
		if err != nil {
			if isRetryable(err) {
				return domain.CashBalance{}, err
			}
			return domain.CashBalance{}, internalError("failed to credit balance", err)
		}
		return bal, nil
	}

	bal, err := r.returning(ctx, `
		UPDATE cash_balances SET balance = balance + $3, last_updated_at = $4
		WHERE desk_id = $1 AND currency_code = $2 AND balance + $3 >= 0`,
		deskID, currencyCode, delta, now)
	if err == nil {
		return bal, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isRetryable(err) {
			return domain.CashBalance{}, err
		}
		return domain.CashBalance{}, internalError("failed to debit balance", err)
	}

	current, getErr := r.GetBalance(ctx, deskID, currencyCode)
	if getErr != nil {
		return domain.CashBalance{}, getErr
	}
	return domain.CashBalance{}, fmt.Errorf("%w: desk %s holds %s %s, %s requested",
		apperrors.ErrInsufficientBalance, deskID, current.Balance.StringFixed(2), currencyCode, delta.Neg().StringFixed(2))
}

func (r *PgxCashBalanceRepository) SetBalance(ctx context.Context, deskID, currencyCode string, amount decimal.Decimal, now time.Time) (domain.CashBalance, error) {
	bal, err := r.returning(ctx, `
		INSERT INTO cash_balances (desk_id, currency_code, balance, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (desk_id, currency_code) DO UPDATE SET
			balance = EXCLUDED.balance,
			last_updated_at = EXCLUDED.last_updated_at`,
		deskID, currencyCode, amount, now)
	if err != nil {
		return domain.CashBalance{}, internalError("failed to set balance", err)
	}
	return bal, nil
}
