package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
)

// BannerPostgres is a PostgreSQL implementation of repository.BannerRepository.
type BannerPostgres struct {
	db *sql.DB
}

// NewBannerPostgres creates a new BannerPostgres repository.
func NewBannerPostgres(db *sql.DB) *BannerPostgres {
	return &BannerPostgres{db: db}
}

var _ repository.BannerRepository = (*BannerPostgres)(nil)

const bannerColumns = `id, title, subtitle, image_url, link_url, button_text, display_order, active, created_at, updated_at`

func scanBanner(s scanner) (*model.Banner, error) {
	var b model.Banner
	if err := s.Scan(
		&b.ID,
		&b.Title,
		&b.Subtitle,
		&b.ImageURL,
		&b.LinkURL,
		&b.ButtonText,
		&b.DisplayOrder,
		&b.Active,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BannerPostgres) Create(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	const q = `
		INSERT INTO banners (title, subtitle, image_url, link_url, button_text, display_order, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bannerColumns
	return scanBanner(r.db.QueryRowContext(ctx, q,
		b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.ButtonText, b.DisplayOrder, b.Active,
	))
}

func (r *BannerPostgres) Update(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	const q = `
		UPDATE banners
		SET title = $2, subtitle = $3, image_url = $4, link_url = $5, button_text = $6,
		    display_order = $7, active = $8, updated_at = now()
		WHERE id = $1
		RETURNING ` + bannerColumns
	return scanBanner(r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.ButtonText, b.DisplayOrder, b.Active,
	))
}

func (r *BannerPostgres) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`
	return scanBanner(r.db.QueryRowContext(ctx, q, id))
}

func (r *BannerPostgres) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	const q = `
		SELECT ` + bannerColumns + `
		FROM banners
		WHERE ($1 = false OR active)
		ORDER BY display_order, created_at`
	rows, err := r.db.QueryContext(ctx, q, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Banner, 0)
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *BannerPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "banners", id)
}

func (r *BannerPostgres) Move(ctx context.Context, id string, dir ordering.Direction) error {
	return moveRow(ctx, r.db, "banners", id, dir)
}

func (r *BannerPostgres) NextOrder(ctx context.Context) (int, error) {
	return nextOrder(ctx, r.db, "banners")
}
