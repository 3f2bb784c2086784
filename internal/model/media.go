package model

import "time"

// Publication is a downloadable document (report, study, newsletter).
type Publication struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	FileURL       string     `json:"file_url"`
	FileKey       string     `json:"-"`
	CoverImageURL string     `json:"cover_image_url"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Video is a YouTube video featured on the site. YouTubeID and ThumbnailURL
// are derived from YouTubeURL when the record is saved.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	YouTubeURL   string    `json:"youtube_url"`
	YouTubeID    string    `json:"youtube_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
