package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// SettingsPostgres reads and upserts the singleton settings rows (id = 1)
// and the per-page banners keyed by page.
type SettingsPostgres struct {
	db *sql.DB
}

func NewSettingsPostgres(db *sql.DB) *SettingsPostgres {
	return &SettingsPostgres{db: db}
}

var _ repository.SettingsRepository = (*SettingsPostgres)(nil)

const siteColumns = `site_name, tagline, logo_url, favicon_url, contact_email, contact_phone, whatsapp, address,
	facebook_url, instagram_url, linkedin_url, youtube_url, meta_title, meta_description,
	cta_title, cta_text, cta_button_text, cta_button_link, updated_at`

func scanSite(s scanner) (*model.SiteSettings, error) {
	var v model.SiteSettings
	if err := s.Scan(
		&v.SiteName, &v.Tagline, &v.LogoURL, &v.FaviconURL,
		&v.ContactEmail, &v.ContactPhone, &v.WhatsApp, &v.Address,
		&v.FacebookURL, &v.InstagramURL, &v.LinkedInURL, &v.YouTubeURL,
		&v.MetaTitle, &v.MetaDescription,
		&v.CTATitle, &v.CTAText, &v.CTAButtonText, &v.CTAButtonLink,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SettingsPostgres) GetSite(ctx context.Context) (*model.SiteSettings, error) {
	return scanSite(r.db.QueryRowContext(ctx, `SELECT `+siteColumns+` FROM site_settings WHERE id = 1`))
}

func (r *SettingsPostgres) SaveSite(ctx context.Context, s *model.SiteSettings) (*model.SiteSettings, error) {
	const q = `
		INSERT INTO site_settings (id, site_name, tagline, logo_url, favicon_url, contact_email, contact_phone, whatsapp, address,
			facebook_url, instagram_url, linkedin_url, youtube_url, meta_title, meta_description,
			cta_title, cta_text, cta_button_text, cta_button_link)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name, tagline = EXCLUDED.tagline,
			logo_url = EXCLUDED.logo_url, favicon_url = EXCLUDED.favicon_url,
			contact_email = EXCLUDED.contact_email, contact_phone = EXCLUDED.contact_phone,
			whatsapp = EXCLUDED.whatsapp, address = EXCLUDED.address,
			facebook_url = EXCLUDED.facebook_url, instagram_url = EXCLUDED.instagram_url,
			linkedin_url = EXCLUDED.linkedin_url, youtube_url = EXCLUDED.youtube_url,
			meta_title = EXCLUDED.meta_title, meta_description = EXCLUDED.meta_description,
			cta_title = EXCLUDED.cta_title, cta_text = EXCLUDED.cta_text,
			cta_button_text = EXCLUDED.cta_button_text, cta_button_link = EXCLUDED.cta_button_link,
			updated_at = now()
		RETURNING ` + siteColumns
	return scanSite(r.db.QueryRowContext(ctx, q,
		s.SiteName, s.Tagline, s.LogoURL, s.FaviconURL,
		s.ContactEmail, s.ContactPhone, s.WhatsApp, s.Address,
		s.FacebookURL, s.InstagramURL, s.LinkedInURL, s.YouTubeURL,
		s.MetaTitle, s.MetaDescription,
		s.CTATitle, s.CTAText, s.CTAButtonText, s.CTAButtonLink,
	))
}

const footerColumns = `description, copyright_text, email, phone, address, facebook_url, instagram_url, linkedin_url, youtube_url, updated_at`

func scanFooter(s scanner) (*model.FooterSettings, error) {
	var v model.FooterSettings
	if err := s.Scan(
		&v.Description, &v.CopyrightText, &v.Email, &v.Phone, &v.Address,
		&v.FacebookURL, &v.InstagramURL, &v.LinkedInURL, &v.YouTubeURL,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SettingsPostgres) GetFooter(ctx context.Context) (*model.FooterSettings, error) {
	return scanFooter(r.db.QueryRowContext(ctx, `SELECT `+footerColumns+` FROM footer_settings WHERE id = 1`))
}

func (r *SettingsPostgres) SaveFooter(ctx context.Context, f *model.FooterSettings) (*model.FooterSettings, error) {
	const q = `
		INSERT INTO footer_settings (id, description, copyright_text, email, phone, address,
			facebook_url, instagram_url, linkedin_url, youtube_url)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description, copyright_text = EXCLUDED.copyright_text,
			email = EXCLUDED.email, phone = EXCLUDED.phone, address = EXCLUDED.address,
			facebook_url = EXCLUDED.facebook_url, instagram_url = EXCLUDED.instagram_url,
			linkedin_url = EXCLUDED.linkedin_url, youtube_url = EXCLUDED.youtube_url,
			updated_at = now()
		RETURNING ` + footerColumns
	return scanFooter(r.db.QueryRowContext(ctx, q,
		f.Description, f.CopyrightText, f.Email, f.Phone, f.Address,
		f.FacebookURL, f.InstagramURL, f.LinkedInURL, f.YouTubeURL,
	))
}

const pageBannerColumns = `page, title, subtitle, image_url, updated_at`

func scanPageBanner(s scanner) (*model.PageBanner, error) {
	var b model.PageBanner
	if err := s.Scan(&b.Page, &b.Title, &b.Subtitle, &b.ImageURL, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *SettingsPostgres) GetPageBanner(ctx context.Context, page model.PageKey) (*model.PageBanner, error) {
	const q = `SELECT ` + pageBannerColumns + ` FROM page_banners WHERE page = $1`
	return scanPageBanner(r.db.QueryRowContext(ctx, q, string(page)))
}

func (r *SettingsPostgres) SavePageBanner(ctx context.Context, b *model.PageBanner) (*model.PageBanner, error) {
	const q = `
		INSERT INTO page_banners (page, title, subtitle, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (page) DO UPDATE SET
			title = EXCLUDED.title, subtitle = EXCLUDED.subtitle, image_url = EXCLUDED.image_url,
			updated_at = now()
		RETURNING ` + pageBannerColumns
	return scanPageBanner(r.db.QueryRowContext(ctx, q, string(b.Page), b.Title, b.Subtitle, b.ImageURL))
}
