package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"abcip/internal/model"
	"abcip/internal/repository"
	"abcip/internal/storage"
)

// SettingsService reads and edits the singleton settings rows and page banners.
// Reading a row that was never saved stores and returns its defaults.
type SettingsService interface {
	Site(ctx context.Context) (*model.SiteSettings, error)
	SaveSite(ctx context.Context, s *model.SiteSettings, logo, favicon *Upload) (*model.SiteSettings, error)
	Footer(ctx context.Context) (*model.FooterSettings, error)
	SaveFooter(ctx context.Context, f *model.FooterSettings) (*model.FooterSettings, error)
	PageBanner(ctx context.Context, page model.PageKey) (*model.PageBanner, error)
	SavePageBanner(ctx context.Context, b *model.PageBanner, image *Upload) (*model.PageBanner, error)
}

type settingsService struct {
	store storage.Storage
	repo  repository.SettingsRepository
}

func NewSettingsService(store storage.Storage, repo repository.SettingsRepository) SettingsService {
	return &settingsService{store: store, repo: repo}
}

func (s *settingsService) Site(ctx context.Context) (*model.SiteSettings, error) {
	v, err := s.repo.GetSite(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		def := model.DefaultSiteSettings()
		return s.repo.SaveSite(ctx, &def)
	}
	return v, err
}

func (s *settingsService) SaveSite(ctx context.Context, v *model.SiteSettings, logo, favicon *Upload) (*model.SiteSettings, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: empty settings", ErrInvalidInput)
	}
	if err := required("site_name", v.SiteName); err != nil {
		return nil, err
	}
	current, err := s.Site(ctx)
	if err != nil {
		return nil, err
	}
	if v.LogoURL == "" {
		v.LogoURL = current.LogoURL
	}
	if v.FaviconURL == "" {
		v.FaviconURL = current.FaviconURL
	}

	stage := newStaging(s.store)
	if err := stage.put(ctx, "settings", logo, &v.LogoURL); err != nil {
		return nil, err
	}
	if err := stage.put(ctx, "settings", favicon, &v.FaviconURL); err != nil {
		stage.abort(ctx)
		return nil, err
	}
	saved, err := s.repo.SaveSite(ctx, v)
	if err != nil {
		return nil, stage.fail(ctx, err)
	}
	stage.done(ctx)
	return saved, nil
}

func (s *settingsService) Footer(ctx context.Context) (*model.FooterSettings, error) {
	v, err := s.repo.GetFooter(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		def := model.DefaultFooterSettings()
		return s.repo.SaveFooter(ctx, &def)
	}
	return v, err
}

func (s *settingsService) SaveFooter(ctx context.Context, f *model.FooterSettings) (*model.FooterSettings, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: empty footer", ErrInvalidInput)
	}
	return s.repo.SaveFooter(ctx, f)
}

func (s *settingsService) PageBanner(ctx context.Context, page model.PageKey) (*model.PageBanner, error) {
	if !page.Valid() {
		return nil, fmt.Errorf("%w: unknown page %q", ErrInvalidInput, page)
	}
	b, err := s.repo.GetPageBanner(ctx, page)
	if errors.Is(err, sql.ErrNoRows) {
		def := model.DefaultPageBanner(page)
		return s.repo.SavePageBanner(ctx, &def)
	}
	return b, err
}

func (s *settingsService) SavePageBanner(ctx context.Context, b *model.PageBanner, image *Upload) (*model.PageBanner, error) {
	if b == nil || !b.Page.Valid() {
		return nil, fmt.Errorf("%w: unknown page", ErrInvalidInput)
	}
	if b.ImageURL == "" {
		current, err := s.PageBanner(ctx, b.Page)
		if err != nil {
			return nil, err
		}
		b.ImageURL = current.ImageURL
	}

	stage := newStaging(s.store)
	if err := stage.put(ctx, "page-banners", image, &b.ImageURL); err != nil {
		return nil, err
	}
	saved, err := s.repo.SavePageBanner(ctx, b)
	if err != nil {
		return nil, stage.fail(ctx, err)
	}
	stage.done(ctx)
	return saved, nil
}
