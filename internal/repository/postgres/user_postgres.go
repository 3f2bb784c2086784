package postgres

import (
	"context"
	"database/sql"
	"strings"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// UserPostgres stores admin accounts. Emails are kept lower-cased.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, name, password_hash, created_at, last_login_at`

func scanUser(s scanner) (*model.AdminUser, error) {
	var (
		u         model.AdminUser
		lastLogin sql.NullTime
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	u.LastLoginAt = timePtr(lastLogin)
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	const q = `INSERT INTO admin_users (email, name, password_hash) VALUES ($1, $2, $3) RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(u.Email)), u.Name, u.PasswordHash))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	const q = `SELECT ` + userColumns + ` FROM admin_users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	const q = `SELECT ` + userColumns + ` FROM admin_users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) TouchLogin(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admin_users SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}
