package model

import "time"

// SiteSettings is the singleton row holding site-wide identity, contact and CTA data.
type SiteSettings struct {
	SiteName        string    `json:"site_name"`
	Tagline         string    `json:"tagline"`
	LogoURL         string    `json:"logo_url"`
	FaviconURL      string    `json:"favicon_url"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	WhatsApp        string    `json:"whatsapp"`
	Address         string    `json:"address"`
	FacebookURL     string    `json:"facebook_url"`
	InstagramURL    string    `json:"instagram_url"`
	LinkedInURL     string    `json:"linkedin_url"`
	YouTubeURL      string    `json:"youtube_url"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	CTATitle        string    `json:"cta_title"`
	CTAText         string    `json:"cta_text"`
	CTAButtonText   string    `json:"cta_button_text"`
	CTAButtonLink   string    `json:"cta_button_link"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSiteSettings is stored the first time the settings row is requested.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:        "ABCIP",
		Tagline:         "Associação Brasileira das Concessionárias de Iluminação Pública",
		MetaTitle:       "ABCIP",
		MetaDescription: "Associação Brasileira das Concessionárias de Iluminação Pública",
		CTATitle:        "Seja uma associada",
		CTAText:         "Faça parte da associação que representa as concessionárias de iluminação pública do Brasil.",
		CTAButtonText:   "Fale conosco",
		CTAButtonLink:   "/contato",
	}
}

// FooterSettings is the singleton row rendered in the site footer.
type FooterSettings struct {
	Description   string    `json:"description"`
	CopyrightText string    `json:"copyright_text"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	FacebookURL   string    `json:"facebook_url"`
	InstagramURL  string    `json:"instagram_url"`
	LinkedInURL   string    `json:"linkedin_url"`
	YouTubeURL    string    `json:"youtube_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultFooterSettings is stored the first time the footer row is requested.
func DefaultFooterSettings() FooterSettings {
	return FooterSettings{
		Description:   "Associação Brasileira das Concessionárias de Iluminação Pública.",
		CopyrightText: "ABCIP. Todos os direitos reservados.",
	}
}
