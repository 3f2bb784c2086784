package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
)

// TeamMemberPostgres is a PostgreSQL implementation of repository.TeamMemberRepository.
type TeamMemberPostgres struct {
	db *sql.DB
}

func NewTeamMemberPostgres(db *sql.DB) *TeamMemberPostgres {
	return &TeamMemberPostgres{db: db}
}

var _ repository.TeamMemberRepository = (*TeamMemberPostgres)(nil)

const teamColumns = `id, name, position, photo_url, bio, linkedin_url, member_group, display_order, active, created_at, updated_at`

func scanTeamMember(s scanner) (*model.TeamMember, error) {
	var m model.TeamMember
	if err := s.Scan(
		&m.ID,
		&m.Name,
		&m.Position,
		&m.PhotoURL,
		&m.Bio,
		&m.LinkedInURL,
		&m.Group,
		&m.DisplayOrder,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamMemberPostgres) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	const q = `
		INSERT INTO team_members (name, position, photo_url, bio, linkedin_url, member_group, display_order, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + teamColumns
	return scanTeamMember(r.db.QueryRowContext(ctx, q,
		m.Name, m.Position, m.PhotoURL, m.Bio, m.LinkedInURL, string(m.Group), m.DisplayOrder, m.Active,
	))
}

func (r *TeamMemberPostgres) Update(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	const q = `
		UPDATE team_members
		SET name = $2, position = $3, photo_url = $4, bio = $5, linkedin_url = $6, member_group = $7,
		    display_order = $8, active = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + teamColumns
	return scanTeamMember(r.db.QueryRowContext(ctx, q,
		m.ID, m.Name, m.Position, m.PhotoURL, m.Bio, m.LinkedInURL, string(m.Group), m.DisplayOrder, m.Active,
	))
}

func (r *TeamMemberPostgres) FindByID(ctx context.Context, id string) (*model.TeamMember, error) {
	const q = `SELECT ` + teamColumns + ` FROM team_members WHERE id = $1`
	return scanTeamMember(r.db.QueryRowContext(ctx, q, id))
}

func (r *TeamMemberPostgres) List(ctx context.Context, activeOnly bool) ([]model.TeamMember, error) {
	const q = `
		SELECT ` + teamColumns + `
		FROM team_members
		WHERE ($1 = false OR active)
		ORDER BY member_group, display_order, name`
	rows, err := r.db.QueryContext(ctx, q, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *TeamMemberPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "team_members", id)
}

func (r *TeamMemberPostgres) Move(ctx context.Context, id string, dir ordering.Direction) error {
	return moveRow(ctx, r.db, "team_members", id, dir)
}

func (r *TeamMemberPostgres) NextOrder(ctx context.Context) (int, error) {
	return nextOrder(ctx, r.db, "team_members")
}
