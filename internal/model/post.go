package model

import "time"

// Post is a news article. Views, Likes and Shares only ever grow.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	CoverImageURL string     `json:"cover_image_url"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Views         int        `json:"views"`
	Likes         int        `json:"likes"`
	Shares        int        `json:"shares"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Counter names one of the engagement counters of a post.
type Counter string

const (
	CounterViews  Counter = "views"
	CounterLikes  Counter = "likes"
	CounterShares Counter = "shares"
)

// Valid reports whether c maps to a posts column.
func (c Counter) Valid() bool {
	switch c {
	case CounterViews, CounterLikes, CounterShares:
		return true
	}
	return false
}

// Comment is a reader comment attached to a post.
type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
