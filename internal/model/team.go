package model

import "time"

// TeamGroup separates board members from the executive team on the about page.
type TeamGroup string

const (
	TeamGroupBoard TeamGroup = "board"
	TeamGroupTeam  TeamGroup = "team"
)

// Valid reports whether g is a known group.
func (g TeamGroup) Valid() bool {
	return g == TeamGroupBoard || g == TeamGroupTeam
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	PhotoURL     string    `json:"photo_url"`
	Bio          string    `json:"bio"`
	LinkedInURL  string    `json:"linkedin_url"`
	Group        TeamGroup `json:"group"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Committee is a strategic committee of the association.
type Committee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Coordinator  string    `json:"coordinator"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
