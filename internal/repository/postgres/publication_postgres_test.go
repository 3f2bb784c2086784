package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"abcip/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var publicationCols = []string{"id", "title", "description", "category", "file_url", "file_key", "cover_image_url", "published_at", "active", "created_at", "updated_at"}

func TestPublicationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	now := time.Now()
	in := &model.Publication{
		Title:    "Relatório anual",
		Category: "relatorios",
		FileURL:  "https://cdn.test/media/publications/r.pdf",
		FileKey:  "publications/r.pdf",
		Active:   true,
	}

	mock.ExpectQuery("INSERT INTO publications").
		WithArgs(in.Title, "", "relatorios", in.FileURL, in.FileKey, "", sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows(publicationCols).
			AddRow("pub1", in.Title, "", "relatorios", in.FileURL, in.FileKey, "", nil, true, now, now))

	out, err := NewPublicationPostgres(db).Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "pub1", out.ID)
	assert.Equal(t, "publications/r.pdf", out.FileKey)
	assert.Nil(t, out.PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationPostgres_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	published := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	listQuery := `SELECT (.+) FROM publications\s+WHERE \(\$1 = false OR active\)\s+ORDER BY COALESCE\(published_at, created_at\) DESC, id DESC`

	t.Run("active only", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectQuery(listQuery).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows(publicationCols).
				AddRow("pub1", "A", "", "", "https://x/a.pdf", "", "", published, true, now, now))

		items, err := NewPublicationPostgres(db).List(ctx, true)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Active)
		require.NotNil(t, items[0].PublishedAt)
		assert.Equal(t, published, *items[0].PublishedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all rows for the admin list", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectQuery(listQuery).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(publicationCols).
				AddRow("pub1", "A", "", "", "https://x/a.pdf", "", "", nil, true, now, now).
				AddRow("pub2", "B", "", "", "https://x/b.pdf", "", "", nil, false, now, now))

		items, err := NewPublicationPostgres(db).List(ctx, false)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.False(t, items[1].Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM publications").WillReturnError(errors.New("db down"))

		_, err = NewPublicationPostgres(db).List(ctx, true)

		assert.EqualError(t, err, "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPublicationPostgres_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM publications\s+WHERE active AND \(title ILIKE \$1`).
		WithArgs("%anual%", 5).
		WillReturnRows(sqlmock.NewRows(publicationCols).
			AddRow("pub1", "Relatório anual", "", "", "https://x/a.pdf", "", "", nil, true, now, now))

	items, err := NewPublicationPostgres(db).Search(context.Background(), "anual", 5)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pub1", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationPostgres_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM publications WHERE id = \$1`).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err = NewPublicationPostgres(db).FindByID(context.Background(), "gone")

	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
