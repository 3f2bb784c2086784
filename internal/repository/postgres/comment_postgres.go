package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

const commentColumns = `id, post_id, author_name, author_email, content, created_at`

func scanComment(s scanner) (*model.Comment, error) {
	var c model.Comment
	if err := s.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (post_id, author_name, author_email, content)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	return scanComment(r.db.QueryRowContext(ctx, q, c.PostID, c.AuthorName, c.AuthorEmail, c.Content))
}

// ListByPost returns the comments of a post, oldest first.
func (r *CommentPostgres) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *CommentPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "comments", id)
}
