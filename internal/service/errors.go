package service

import (
	"database/sql"
	"errors"

	"abcip/internal/ordering"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("not found")
	ErrReaderNil          = errors.New("reader is nil")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCounter     = errors.New("invalid counter")
	ErrInvalidDirection   = ordering.ErrInvalidDirection
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// notFound maps a missing row to ErrNotFound and passes every other error through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
