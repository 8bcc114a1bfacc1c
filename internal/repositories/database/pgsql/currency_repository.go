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

type PgxCurrencyRepository struct {
	BaseRepository
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencySelect = `
SELECT currency_code, name, rate_symbol, is_base, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM currencies
`

// SaveCurrency inserts a currency and its denominations.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	row, denoms := mapping.ToModelCurrency(currency)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO currencies (currency_code, name, rate_symbol, is_base, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		row.CurrencyCode, row.Name, row.RateSymbol, row.IsBase, row.IsActive,
		row.CreatedAt, row.CreatedBy, row.LastUpdatedAt, row.LastUpdatedBy,
	)
	for _, d := range denoms {
		batch.Queue(`INSERT INTO denominations (currency_code, kind, value) VALUES ($1, $2, $3);`, d.CurrencyCode, d.Kind, d.Value)
	}
	return execBatch(ctx, r.DB, batch, "currency "+currency.CurrencyCode)
}

func (r *PgxCurrencyRepository) getCurrencies(ctx context.Context, filterQuery string, args ...any) ([]domain.Currency, error) {
	rows, err := r.DB.Query(ctx, currencySelect+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query currencies", err)
	}
	currencies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect currency rows", err)
	}
	if len(currencies) == 0 {
		return []domain.Currency{}, nil
	}

	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.CurrencyCode
	}
	denomRows, err := r.DB.Query(ctx, `
		SELECT currency_code, kind, value FROM denominations
		WHERE currency_code = ANY($1)
		ORDER BY currency_code, value DESC;`, codes)
	if err != nil {
		return nil, internalError("failed to query denominations", err)
	}
	denoms, err := pgx.CollectRows(denomRows, pgx.RowToStructByName[models.Denomination])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect denomination rows", err)
	}
	byCurrency := make(map[string][]models.Denomination, len(currencies))
	for _, d := range denoms {
		byCurrency[d.CurrencyCode] = append(byCurrency[d.CurrencyCode], d)
	}

	out := make([]domain.Currency, len(currencies))
	for i, c := range currencies {
		out[i] = mapping.ToDomainCurrency(c, byCurrency[c.CurrencyCode])
	}
	return out, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currencies, err := r.getCurrencies(ctx, `WHERE currency_code = $1`, currencyCode)
	if err != nil {
		return nil, err
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyCode)
	}
	return &currencies[0], nil
}

// FindBaseCurrency retrieves the base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	currencies, err := r.getCurrencies(ctx, `WHERE is_base`)
	if err != nil {
		return nil, err
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: no base currency configured", apperrors.ErrNotFound)
	}
	return &currencies[0], nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return r.getCurrencies(ctx, `ORDER BY currency_code`)
}
