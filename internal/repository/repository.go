package repository

import (
	"context"

	"abcip/internal/model"
	"abcip/internal/ordering"
)

// Package repository declares the persistence contracts used by services.
// Implementations live in subpackages (postgres) and contain no business logic.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// OrderedRepository is the persistence contract of tables with a display_order column.
type OrderedRepository[T any] interface {
	// Create inserts a row and returns it as stored.
	Create(ctx context.Context, item *T) (*T, error)
	// Update overwrites every editable column of the row with item's ID.
	// It returns sql.ErrNoRows when the row does not exist.
	Update(ctx context.Context, item *T) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	// List returns rows by display_order, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]T, error)
	// Delete removes a row. It returns nil when the row did not exist.
	Delete(ctx context.Context, id string) error
	// Move swaps display_order with the neighbor at order±1 inside one transaction.
	Move(ctx context.Context, id string, dir ordering.Direction) error
	// NextOrder returns the order a new row should get to land at the end of the list.
	NextOrder(ctx context.Context) (int, error)
}

type BannerRepository = OrderedRepository[model.Banner]

type TeamMemberRepository = OrderedRepository[model.TeamMember]

type CommitteeRepository = OrderedRepository[model.Committee]

type VideoRepository = OrderedRepository[model.Video]

// AssociateRepository adds bulk removal and name search to the ordered contract.
type AssociateRepository interface {
	OrderedRepository[model.Associate]
	// BulkDelete removes every listed row and reports how many existed.
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	Search(ctx context.Context, q string, limit int) ([]model.Associate, error)
}

// PostFilter narrows post listings.
type PostFilter struct {
	PublishedOnly bool
	Category      string
	Query         string
	Page          PageQuery
}

// PostContent is the id and body of a post, used by bulk content rewrites.
type PostContent struct {
	ID      string
	Content string
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	Update(ctx context.Context, p *model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, f PostFilter) (*PageResult[model.Post], error)
	Delete(ctx context.Context, id string) error
	// Increment atomically adds one to a counter column of a published post
	// and returns the new value. Drafts report sql.ErrNoRows.
	Increment(ctx context.Context, id string, c model.Counter) (int, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Categories(ctx context.Context) ([]string, error)
	ListContents(ctx context.Context) ([]PostContent, error)
	UpdateContent(ctx context.Context, id, content string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type PublicationRepository interface {
	Create(ctx context.Context, p *model.Publication) (*model.Publication, error)
	Update(ctx context.Context, p *model.Publication) (*model.Publication, error)
	FindByID(ctx context.Context, id string) (*model.Publication, error)
	List(ctx context.Context, activeOnly bool) ([]model.Publication, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, limit int) ([]model.Publication, error)
}

type ContactRepository interface {
	Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ContactMessage], error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores the singleton settings rows and per-page banners.
// Getters return sql.ErrNoRows when the row has never been saved.
type SettingsRepository interface {
	GetSite(ctx context.Context) (*model.SiteSettings, error)
	SaveSite(ctx context.Context, s *model.SiteSettings) (*model.SiteSettings, error)
	GetFooter(ctx context.Context) (*model.FooterSettings, error)
	SaveFooter(ctx context.Context, f *model.FooterSettings) (*model.FooterSettings, error)
	GetPageBanner(ctx context.Context, page model.PageKey) (*model.PageBanner, error)
	SavePageBanner(ctx context.Context, b *model.PageBanner) (*model.PageBanner, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	TouchLogin(ctx context.Context, id string) error
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}
