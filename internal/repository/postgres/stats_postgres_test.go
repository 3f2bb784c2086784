package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsPostgres_Dashboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}).
			AddRow(10, 7, 4, 3, 12, 8, 2, 5, 6, 1, 1500))

	s, err := NewStatsPostgres(db).Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, s.Posts)
	assert.Equal(t, 7, s.PublishedPosts)
	assert.Equal(t, 1, s.UnreadMessages)
	assert.Equal(t, 1500, s.TotalViews)
	assert.NoError(t, mock.ExpectationsWereMet())
}
