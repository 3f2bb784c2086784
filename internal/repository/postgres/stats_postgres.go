package postgres

import (
	"context"
	"database/sql"

	"abcip/internal/model"
	"abcip/internal/repository"
)

// StatsPostgres computes the admin dashboard counters in a single round trip.
type StatsPostgres struct {
	db *sql.DB
}

func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

var _ repository.StatsRepository = (*StatsPostgres)(nil)

func (r *StatsPostgres) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM posts WHERE published),
			(SELECT COUNT(*) FROM comments),
			(SELECT COUNT(*) FROM banners),
			(SELECT COUNT(*) FROM associates),
			(SELECT COUNT(*) FROM team_members),
			(SELECT COUNT(*) FROM committees),
			(SELECT COUNT(*) FROM publications),
			(SELECT COUNT(*) FROM videos),
			(SELECT COUNT(*) FROM contact_messages WHERE NOT read),
			(SELECT COALESCE(SUM(views), 0) FROM posts)`
	var s model.DashboardStats
	if err := r.db.QueryRowContext(ctx, q).Scan(
		&s.Posts,
		&s.PublishedPosts,
		&s.Comments,
		&s.Banners,
		&s.Associates,
		&s.TeamMembers,
		&s.Committees,
		&s.Publications,
		&s.Videos,
		&s.UnreadMessages,
		&s.TotalViews,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
