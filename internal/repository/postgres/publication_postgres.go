package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// PublicationPostgres is a PostgreSQL implementation of repository.PublicationRepository.
type PublicationPostgres struct {
	db *sql.DB
}

func NewPublicationPostgres(db *sql.DB) *PublicationPostgres {
	return &PublicationPostgres{db: db}
}

var _ repository.PublicationRepository = (*PublicationPostgres)(nil)

const publicationColumns = `id, title, description, category, file_url, file_key, cover_image_url, published_at, active, created_at, updated_at`

func scanPublication(s scanner) (*model.Publication, error) {
	var (
		p           model.Publication
		publishedAt sql.NullTime
	)
	if err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.FileURL,
		&p.FileKey,
		&p.CoverImageURL,
		&publishedAt,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.PublishedAt = timePtr(publishedAt)
	return &p, nil
}

func (r *PublicationPostgres) Create(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	const q = `
		INSERT INTO publications (title, description, category, file_url, file_key, cover_image_url, published_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + publicationColumns
	return scanPublication(r.db.QueryRowContext(ctx, q,
		p.Title, p.Description, p.Category, p.FileURL, p.FileKey, p.CoverImageURL, nullTime(p.PublishedAt), p.Active,
	))
}

func (r *PublicationPostgres) Update(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	const q = `
		UPDATE publications
		SET title = $2, description = $3, category = $4, file_url = $5, file_key = $6,
		    cover_image_url = $7, published_at = $8, active = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + publicationColumns
	return scanPublication(r.db.QueryRowContext(ctx, q,
		p.ID, p.Title, p.Description, p.Category, p.FileURL, p.FileKey, p.CoverImageURL, nullTime(p.PublishedAt), p.Active,
	))
}

func (r *PublicationPostgres) FindByID(ctx context.Context, id string) (*model.Publication, error) {
	const q = `SELECT ` + publicationColumns + ` FROM publications WHERE id = $1`
	return scanPublication(r.db.QueryRowContext(ctx, q, id))
}

// List returns publications newest first.
func (r *PublicationPostgres) List(ctx context.Context, activeOnly bool) ([]model.Publication, error) {
	const q = `SELECT ` + publicationColumns + ` FROM publications
		WHERE ($1 = false OR active)
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC`
	return r.query(ctx, q, activeOnly)
}

func (r *PublicationPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "publications", id)
}

// Search matches active publications by title, description or category.
func (r *PublicationPostgres) Search(ctx context.Context, q string, limit int) ([]model.Publication, error) {
	const stmt = `SELECT ` + publicationColumns + ` FROM publications
		WHERE active AND (title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT $2`
	return r.query(ctx, stmt, likePattern(q), limit)
}

func (r *PublicationPostgres) query(ctx context.Context, q string, args ...any) ([]model.Publication, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
