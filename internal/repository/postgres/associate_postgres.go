package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
)

// AssociatePostgres is a PostgreSQL implementation of repository.AssociateRepository.
type AssociatePostgres struct {
	db *sql.DB
}

// NewAssociatePostgres creates a new AssociatePostgres repository.
func NewAssociatePostgres(db *sql.DB) *AssociatePostgres {
	return &AssociatePostgres{db: db}
}

var _ repository.AssociateRepository = (*AssociatePostgres)(nil)

const associateColumns = `id, name, logo_url, website, description, display_order, active, created_at, updated_at`

func scanAssociate(s scanner) (*model.Associate, error) {
	var a model.Associate
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.LogoURL,
		&a.Website,
		&a.Description,
		&a.DisplayOrder,
		&a.Active,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssociatePostgres) Create(ctx context.Context, a *model.Associate) (*model.Associate, error) {
	const q = `
		INSERT INTO associates (name, logo_url, website, description, display_order, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + associateColumns
	return scanAssociate(r.db.QueryRowContext(ctx, q,
		a.Name, a.LogoURL, a.Website, a.Description, a.DisplayOrder, a.Active,
	))
}

func (r *AssociatePostgres) Update(ctx context.Context, a *model.Associate) (*model.Associate, error) {
	const q = `
		UPDATE associates
		SET name = $2, logo_url = $3, website = $4, description = $5, display_order = $6, active = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + associateColumns
	return scanAssociate(r.db.QueryRowContext(ctx, q,
		a.ID, a.Name, a.LogoURL, a.Website, a.Description, a.DisplayOrder, a.Active,
	))
}

func (r *AssociatePostgres) FindByID(ctx context.Context, id string) (*model.Associate, error) {
	const q = `SELECT ` + associateColumns + ` FROM associates WHERE id = $1`
	return scanAssociate(r.db.QueryRowContext(ctx, q, id))
}

func (r *AssociatePostgres) List(ctx context.Context, activeOnly bool) ([]model.Associate, error) {
	const q = `
		SELECT ` + associateColumns + `
		FROM associates
		WHERE ($1 = false OR active)
		ORDER BY display_order, name`
	return r.query(ctx, q, activeOnly)
}

func (r *AssociatePostgres) Search(ctx context.Context, term string, limit int) ([]model.Associate, error) {
	const q = `
		SELECT ` + associateColumns + `
		FROM associates
		WHERE active AND (name ILIKE $1 OR description ILIKE $1)
		ORDER BY display_order, name
		LIMIT $2`
	return r.query(ctx, q, likePattern(term), limit)
}

func (r *AssociatePostgres) query(ctx context.Context, q string, args ...any) ([]model.Associate, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Associate, 0)
	for rows.Next() {
		a, err := scanAssociate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r *AssociatePostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "associates", id)
}

// BulkDelete removes all listed associates in a single statement.
func (r *AssociatePostgres) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const q = `DELETE FROM associates WHERE id = ANY($1::uuid[])`
	res, err := r.db.ExecContext(ctx, q, uuidArray(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *AssociatePostgres) Move(ctx context.Context, id string, dir ordering.Direction) error {
	return moveRow(ctx, r.db, "associates", id, dir)
}

func (r *AssociatePostgres) NextOrder(ctx context.Context) (int, error) {
	return nextOrder(ctx, r.db, "associates")
}
