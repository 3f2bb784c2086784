package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
)

// CommitteePostgres is a PostgreSQL implementation of repository.CommitteeRepository.
type CommitteePostgres struct {
	db *sql.DB
}

func NewCommitteePostgres(db *sql.DB) *CommitteePostgres {
	return &CommitteePostgres{db: db}
}

var _ repository.CommitteeRepository = (*CommitteePostgres)(nil)

const committeeColumns = `id, name, description, coordinator, display_order, active, created_at, updated_at`

func scanCommittee(s scanner) (*model.Committee, error) {
	var c model.Committee
	if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.Coordinator, &c.DisplayOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommitteePostgres) Create(ctx context.Context, c *model.Committee) (*model.Committee, error) {
	const q = `
		INSERT INTO committees (name, description, coordinator, display_order, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + committeeColumns
	return scanCommittee(r.db.QueryRowContext(ctx, q, c.Name, c.Description, c.Coordinator, c.DisplayOrder, c.Active))
}

func (r *CommitteePostgres) Update(ctx context.Context, c *model.Committee) (*model.Committee, error) {
	const q = `
		UPDATE committees
		SET name = $2, description = $3, coordinator = $4, display_order = $5, active = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + committeeColumns
	return scanCommittee(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Description, c.Coordinator, c.DisplayOrder, c.Active))
}

func (r *CommitteePostgres) FindByID(ctx context.Context, id string) (*model.Committee, error) {
	const q = `SELECT ` + committeeColumns + ` FROM committees WHERE id = $1`
	return scanCommittee(r.db.QueryRowContext(ctx, q, id))
}

func (r *CommitteePostgres) List(ctx context.Context, activeOnly bool) ([]model.Committee, error) {
	const q = `
		SELECT ` + committeeColumns + `
		FROM committees
		WHERE ($1 = false OR active)
		ORDER BY display_order, name`
	rows, err := r.db.QueryContext(ctx, q, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Committee, 0)
	for rows.Next() {
		c, err := scanCommittee(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *CommitteePostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "committees", id)
}

func (r *CommitteePostgres) Move(ctx context.Context, id string, dir ordering.Direction) error {
	return moveRow(ctx, r.db, "committees", id, dir)
}

func (r *CommitteePostgres) NextOrder(ctx context.Context) (int, error) {
	return nextOrder(ctx, r.db, "committees")
}
