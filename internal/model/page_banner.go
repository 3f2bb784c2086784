package model

import "time"

// PageKey identifies a public page that carries its own header banner.
type PageKey string

const (
	PageAbout        PageKey = "about"
	PageAssociates   PageKey = "associates"
	PageNews         PageKey = "news"
	PageContact      PageKey = "contact"
	PagePublications PageKey = "publications"
)

// PageKeys lists every page with a configurable banner, in admin menu order.
var PageKeys = []PageKey{PageAbout, PageAssociates, PageNews, PagePublications, PageContact}

// Valid reports whether k is one of the known pages.
func (k PageKey) Valid() bool {
	for _, p := range PageKeys {
		if p == k {
			return true
		}
	}
	return false
}

// PageBanner is the header image and copy of a single public page.
type PageBanner struct {
	Page      PageKey   `json:"page"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

var defaultPageTitles = map[PageKey]string{
	PageAbout:        "Sobre a ABCIP",
	PageAssociates:   "Associadas",
	PageNews:         "Notícias",
	PageContact:      "Contato",
	PagePublications: "Publicações",
}

// DefaultPageBanner returns the banner stored when a page has none yet.
func DefaultPageBanner(k PageKey) PageBanner {
	return PageBanner{Page: k, Title: defaultPageTitles[k]}
}
