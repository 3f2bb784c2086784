package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// PostPostgres is a PostgreSQL implementation of repository.PostRepository.
type PostPostgres struct {
	db *sql.DB
}

// NewPostPostgres creates a new PostPostgres repository.
func NewPostPostgres(db *sql.DB) *PostPostgres {
	return &PostPostgres{db: db}
}

var _ repository.PostRepository = (*PostPostgres)(nil)

const postColumns = `id, title, slug, excerpt, content, cover_image_url, author, category, published, published_at, views, likes, shares, created_at, updated_at`

func scanPost(s scanner) (*model.Post, error) {
	var (
		p           model.Post
		publishedAt sql.NullTime
	)
	if err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Excerpt,
		&p.Content,
		&p.CoverImageURL,
		&p.Author,
		&p.Category,
		&p.Published,
		&publishedAt,
		&p.Views,
		&p.Likes,
		&p.Shares,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.PublishedAt = timePtr(publishedAt)
	return &p, nil
}

func (r *PostPostgres) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		INSERT INTO posts (title, slug, excerpt, content, cover_image_url, author, category, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + postColumns
	return scanPost(r.db.QueryRowContext(ctx, q,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImageURL, p.Author, p.Category, p.Published, nullTime(p.PublishedAt),
	))
}

// Update writes the editable columns; counters are only changed by Increment.
func (r *PostPostgres) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		UPDATE posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, cover_image_url = $6, author = $7,
		    category = $8, published = $9, published_at = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + postColumns
	return scanPost(r.db.QueryRowContext(ctx, q,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImageURL, p.Author, p.Category, p.Published, nullTime(p.PublishedAt),
	))
}

func (r *PostPostgres) FindByID(ctx context.Context, id string) (*model.Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostPostgres) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	return scanPost(r.db.QueryRowContext(ctx, q, slug))
}

// List returns a page of posts, newest first, and the total matching the filter.
func (r *PostPostgres) List(ctx context.Context, f repository.PostFilter) (*repository.PageResult[model.Post], error) {
	where, args := postWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	qList := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY COALESCE(published_at, created_at) DESC, id DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, n+1, n+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, f.Page.Limit, f.Page.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Post]{Items: items, Total: total}, nil
}

func postWhere(f repository.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.PublishedOnly {
		conds = append(conds, "published")
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if strings.TrimSpace(f.Query) != "" {
		args = append(args, likePattern(f.Query))
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d OR content ILIKE $%d)", len(args), len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "posts", id)
}

// Increment bumps a counter in a single statement so concurrent requests never lose updates.
func (r *PostPostgres) Increment(ctx context.Context, id string, c model.Counter) (int, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("unknown counter %q", c)
	}
	q := fmt.Sprintf(`UPDATE posts SET %[1]s = %[1]s + 1 WHERE id = $1 AND published RETURNING %[1]s`, string(c))
	var n int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostPostgres) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND ($2 = '' OR id::text <> $2))`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Categories lists the distinct non-empty categories of published posts.
func (r *PostPostgres) Categories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM posts WHERE published AND category <> '' ORDER BY category`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostPostgres) ListContents(ctx context.Context) ([]repository.PostContent, error) {
	const q = `SELECT id, content FROM posts ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.PostContent, 0)
	for rows.Next() {
		var pc repository.PostContent
		if err := rows.Scan(&pc.ID, &pc.Content); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (r *PostPostgres) UpdateContent(ctx context.Context, id, content string) error {
	const q = `UPDATE posts SET content = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, content)
	if err != nil {
		return err
	}
	return expectOne(res)
}
