package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
)

// VideoPostgres is a PostgreSQL implementation of repository.VideoRepository.
type VideoPostgres struct {
	db *sql.DB
}

func NewVideoPostgres(db *sql.DB) *VideoPostgres {
	return &VideoPostgres{db: db}
}

var _ repository.VideoRepository = (*VideoPostgres)(nil)

const videoColumns = `id, title, description, youtube_url, youtube_id, thumbnail_url, display_order, active, created_at, updated_at`

func scanVideo(s scanner) (*model.Video, error) {
	var v model.Video
	if err := s.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.YouTubeURL,
		&v.YouTubeID,
		&v.ThumbnailURL,
		&v.DisplayOrder,
		&v.Active,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoPostgres) Create(ctx context.Context, v *model.Video) (*model.Video, error) {
	const q = `
		INSERT INTO videos (title, description, youtube_url, youtube_id, thumbnail_url, display_order, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRowContext(ctx, q,
		v.Title, v.Description, v.YouTubeURL, v.YouTubeID, v.ThumbnailURL, v.DisplayOrder, v.Active,
	))
}

func (r *VideoPostgres) Update(ctx context.Context, v *model.Video) (*model.Video, error) {
	const q = `
		UPDATE videos
		SET title = $2, description = $3, youtube_url = $4, youtube_id = $5, thumbnail_url = $6,
		    display_order = $7, active = $8, updated_at = now()
		WHERE id = $1
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRowContext(ctx, q,
		v.ID, v.Title, v.Description, v.YouTubeURL, v.YouTubeID, v.ThumbnailURL, v.DisplayOrder, v.Active,
	))
}

func (r *VideoPostgres) FindByID(ctx context.Context, id string) (*model.Video, error) {
	const q = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	return scanVideo(r.db.QueryRowContext(ctx, q, id))
}

func (r *VideoPostgres) List(ctx context.Context, activeOnly bool) ([]model.Video, error) {
	const q = `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE ($1 = false OR active)
		ORDER BY display_order, created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

func (r *VideoPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "videos", id)
}

func (r *VideoPostgres) Move(ctx context.Context, id string, dir ordering.Direction) error {
	return moveRow(ctx, r.db, "videos", id, dir)
}

func (r *VideoPostgres) NextOrder(ctx context.Context) (int, error) {
	return nextOrder(ctx, r.db, "videos")
}
