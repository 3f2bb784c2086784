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

func TestSettingsPostgres_GetSite_NotSaved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM site_settings WHERE id = 1").
		WillReturnError(sql.ErrNoRows)

	s, err := NewSettingsPostgres(db).GetSite(context.Background())

	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsPostgres_SaveFooter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	in := model.DefaultFooterSettings()
	in.Email = "contato@abcip.org.br"

	mock.ExpectQuery(`INSERT INTO footer_settings (.+) ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(in.Description, in.CopyrightText, in.Email, "", "", "", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{
			"description", "copyright_text", "email", "phone", "address",
			"facebook_url", "instagram_url", "linkedin_url", "youtube_url", "updated_at",
		}).AddRow(in.Description, in.CopyrightText, in.Email, "", "", "", "", "", "", time.Now()))

	out, err := NewSettingsPostgres(db).SaveFooter(context.Background(), &in)

	require.NoError(t, err)
	assert.Equal(t, "contato@abcip.org.br", out.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsPostgres_PageBanner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSettingsPostgres(db)
	ctx := context.Background()
	cols := []string{"page", "title", "subtitle", "image_url", "updated_at"}

	mock.ExpectQuery(`INSERT INTO page_banners (.+) ON CONFLICT \(page\)`).
		WithArgs("news", "Notícias", "Acompanhe", "https://cdn.test/media/page-banners/n.jpg").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("news", "Notícias", "Acompanhe", "https://cdn.test/media/page-banners/n.jpg", time.Now()))
	mock.ExpectQuery("SELECT (.+) FROM page_banners WHERE page = ?").
		WithArgs("news").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("news", "Notícias", "Acompanhe", "https://cdn.test/media/page-banners/n.jpg", time.Now()))

	saved, err := repo.SavePageBanner(ctx, &model.PageBanner{
		Page:     model.PageNews,
		Title:    "Notícias",
		Subtitle: "Acompanhe",
		ImageURL: "https://cdn.test/media/page-banners/n.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PageNews, saved.Page)

	got, err := repo.GetPageBanner(ctx, model.PageNews)
	require.NoError(t, err)
	assert.Equal(t, "Acompanhe", got.Subtitle)

	assert.NoError(t, mock.ExpectationsWereMet())
}
