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

// PgxDeskRepository reads desk configuration and stores desk links.
type PgxDeskRepository struct {
	BaseRepository
}

var (
	_ portsrepo.DeskReader               = (*PgxDeskRepository)(nil)
	_ portsrepo.DeskLinkRepositoryFacade = (*PgxDeskRepository)(nil)
)

const deskSelect = `SELECT desk_id, workcenter_id, name, pairing_code_hash FROM desks `

func (r *PgxDeskRepository) getDesks(ctx context.Context, filterQuery string, args ...any) ([]domain.Desk, error) {
	rows, err := r.DB.Query(ctx, deskSelect+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query desks", err)
	}
	desks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Desk])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, internalError("failed to collect desk rows", err)
	}
	out := make([]domain.Desk, len(desks))
	for i, d := range desks {
		out[i] = mapping.ToDomainDesk(d)
	}
	return out, nil
}

func (r *PgxDeskRepository) FindDeskByID(ctx context.Context, deskID string) (*domain.Desk, error) {
	desks, err := r.getDesks(ctx, `WHERE desk_id = $1`, deskID)
	if err != nil {
		return nil, err
	}
	if len(desks) == 0 {
		return nil, fmt.Errorf("%w: desk %s", apperrors.ErrNotFound, deskID)
	}
	return &desks[0], nil
}

func (r *PgxDeskRepository) ListDesks(ctx context.Context) ([]domain.Desk, error) {
	return r.getDesks(ctx, `ORDER BY desk_id`)
}

func (r *PgxDeskRepository) FindWorkcenterByID(ctx context.Context, workcenterID string) (*domain.Workcenter, error) {
	query := `
		SELECT w.workcenter_id, w.name,
			COALESCE(array_agg(wc.currency_code ORDER BY wc.currency_code) FILTER (WHERE wc.currency_code IS NOT NULL), '{}')
		FROM workcenters w
		LEFT JOIN workcenter_currencies wc ON wc.workcenter_id = w.workcenter_id
		WHERE w.workcenter_id = $1
		GROUP BY w.workcenter_id, w.name;
	`
	var wc domain.Workcenter
	err := r.DB.QueryRow(ctx, query, workcenterID).Scan(&wc.WorkcenterID, &wc.Name, &wc.AcceptedCurrencies)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: workcenter %s", apperrors.ErrNotFound, workcenterID)
		}
		return nil, internalError("failed to find workcenter "+workcenterID, err)
	}
	return &wc, nil
}

func (r *PgxDeskRepository) FindDeskLink(ctx context.Context, userID string) (*domain.DeskLink, error) {
	var link domain.DeskLink
	err := r.DB.QueryRow(ctx, `SELECT user_id, desk_id, linked_at FROM desk_links WHERE user_id = $1;`, userID).
		Scan(&link.UserID, &link.DeskID, &link.LinkedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no desk linked for user %s", apperrors.ErrNotFound, userID)
		}
		return nil, internalError("failed to find desk link for user "+userID, err)
	}
	return &link, nil
}

func (r *PgxDeskRepository) SaveDeskLink(ctx context.Context, link domain.DeskLink) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO desk_links (user_id, desk_id, linked_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET desk_id = EXCLUDED.desk_id, linked_at = EXCLUDED.linked_at;`,
		link.UserID, link.DeskID, link.LinkedAt)
	if err != nil {
		return internalError("failed to save desk link for user "+link.UserID, err)
	}
	return nil
}
