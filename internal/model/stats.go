package model

// DashboardStats are the counters shown on the admin landing page.
type DashboardStats struct {
	Posts          int `json:"posts"`
	PublishedPosts int `json:"published_posts"`
	Comments       int `json:"comments"`
	Banners        int `json:"banners"`
	Associates     int `json:"associates"`
	TeamMembers    int `json:"team_members"`
	Committees     int `json:"committees"`
	Publications   int `json:"publications"`
	Videos         int `json:"videos"`
	UnreadMessages int `json:"unread_messages"`
	TotalViews     int `json:"total_views"`
}
