package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// ContactPostgres stores contact form submissions.
type ContactPostgres struct {
	db *sql.DB
}

func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

const contactColumns = `id, name, email, phone, company, subject, message, read, created_at`

func scanContact(s scanner) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Company, &m.Subject, &m.Message, &m.Read, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContactPostgres) Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (name, email, phone, company, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + contactColumns
	return scanContact(r.db.QueryRowContext(ctx, q, m.Name, m.Email, m.Phone, m.Company, m.Subject, m.Message))
}

// List returns a page of messages, newest first.
func (r *ContactPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ContactMessage], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ContactMessage]{Items: items, Total: total}, nil
}

func (r *ContactPostgres) MarkRead(ctx context.Context, id string, read bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET read = $2 WHERE id = $1`, id, read)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *ContactPostgres) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "contact_messages", id)
}
