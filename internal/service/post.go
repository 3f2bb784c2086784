package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"abcip/internal/content"
	"abcip/internal/model"
	"abcip/internal/repository"
	"abcip/internal/storage"
)

const (
	// DefaultPostsPerPage is the news grid page size.
	DefaultPostsPerPage = 9
	maxPostsPerPage     = 50
	excerptLength       = 180
	maxCommentLength    = 2000
)

// PostQuery selects a page of posts. Page is 1-based.
type PostQuery struct {
	Page          int
	PerPage       int
	Category      string
	Search        string
	PublishedOnly bool
}

// PostListResult is the service-level DTO for paginated posts.
type PostListResult struct {
	Items      []model.Post `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalPages int          `json:"total_pages"`
}

// HasPrev reports whether a page before the current one exists.
func (r *PostListResult) HasPrev() bool { return r.Page > 1 }

// HasNext reports whether a page after the current one exists.
func (r *PostListResult) HasNext() bool { return r.Page < r.TotalPages }

// LinkConversion summarizes a ConvertLegacyLinks run.
type LinkConversion struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

// PostService defines the news use cases: editing, public reading, engagement and comments.
type PostService interface {
	List(ctx context.Context, q PostQuery) (*PostListResult, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	// GetPublished returns a post by slug; drafts are reported as ErrNotFound.
	GetPublished(ctx context.Context, slug string) (*model.Post, error)
	Categories(ctx context.Context) ([]string, error)

	// Save creates or updates a post. The slug is derived from the title when
	// empty and made unique with a numeric suffix. published_at is stamped the
	// first time a post is published.
	Save(ctx context.Context, p *model.Post, cover *Upload) (*model.Post, error)
	Delete(ctx context.Context, id string) error

	// Engage adds one to a counter and returns the new value.
	Engage(ctx context.Context, id string, counter model.Counter) (int, error)

	Comments(ctx context.Context, postID string) ([]model.Comment, error)
	AddComment(ctx context.Context, c *model.Comment) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	// ConvertLegacyLinks rewrites bare URLs in every post body into anchors.
	ConvertLegacyLinks(ctx context.Context) (*LinkConversion, error)
}

type postService struct {
	store    storage.Storage
	repo     repository.PostRepository
	comments repository.CommentRepository
	now      func() time.Time
}

// NewPostService constructs a new PostService.
func NewPostService(store storage.Storage, repo repository.PostRepository, comments repository.CommentRepository) PostService {
	return &postService{store: store, repo: repo, comments: comments, now: time.Now}
}

func (s *postService) List(ctx context.Context, q PostQuery) (*PostListResult, error) {
	if q.PerPage <= 0 {
		q.PerPage = DefaultPostsPerPage
	}
	if q.PerPage > maxPostsPerPage {
		q.PerPage = maxPostsPerPage
	}
	if q.Page < 1 {
		q.Page = 1
	}

	res, err := s.repo.List(ctx, repository.PostFilter{
		PublishedOnly: q.PublishedOnly,
		Category:      strings.TrimSpace(q.Category),
		Query:         strings.TrimSpace(q.Search),
		Page:          repository.PageQuery{Limit: q.PerPage, Offset: (q.Page - 1) * q.PerPage},
	})
	if err != nil {
		return nil, err
	}

	pages := (res.Total + q.PerPage - 1) / q.PerPage
	if pages < 1 {
		pages = 1
	}
	return &PostListResult{Items: res.Items, Total: res.Total, Page: q.Page, PerPage: q.PerPage, TotalPages: pages}, nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *postService) GetPublished(ctx context.Context, slug string) (*model.Post, error) {
	if slug == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *postService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *postService) Save(ctx context.Context, p *model.Post, cover *Upload) (*model.Post, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: empty post", ErrInvalidInput)
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if err := required("title", p.Title); err != nil {
		return nil, err
	}

	var existing *model.Post
	if p.ID != "" {
		var err error
		if existing, err = s.repo.FindByID(ctx, p.ID); err != nil {
			return nil, notFound(err)
		}
		if p.CoverImageURL == "" {
			p.CoverImageURL = existing.CoverImageURL
		}
	}

	base := content.Slugify(p.Slug)
	if base == "" {
		base = content.Slugify(p.Title)
	}
	if base == "" {
		return nil, fmt.Errorf("%w: title has no usable characters for a slug", ErrInvalidInput)
	}
	slug, err := s.uniqueSlug(ctx, base, p.ID)
	if err != nil {
		return nil, err
	}
	p.Slug = slug

	if strings.TrimSpace(p.Excerpt) == "" {
		p.Excerpt = content.Excerpt(p.Content, excerptLength)
	}

	switch {
	case !p.Published:
		p.PublishedAt = nil
	case p.PublishedAt != nil:
	case existing != nil && existing.PublishedAt != nil:
		p.PublishedAt = existing.PublishedAt
	default:
		now := s.now().UTC()
		p.PublishedAt = &now
	}

	stage := newStaging(s.store)
	if err := stage.put(ctx, "posts", cover, &p.CoverImageURL); err != nil {
		return nil, err
	}

	var saved *model.Post
	if p.ID == "" {
		saved, err = s.repo.Create(ctx, p)
	} else {
		saved, err = s.repo.Update(ctx, p)
	}
	if err != nil {
		return nil, stage.fail(ctx, notFound(err))
	}
	stage.done(ctx)
	return saved, nil
}

// uniqueSlug appends -2, -3, ... to base until no other post uses it.
func (s *postService) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		taken, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	discard(ctx, s.store, p.CoverImageURL)
	return nil
}

func (s *postService) Engage(ctx context.Context, id string, counter model.Counter) (int, error) {
	if id == "" {
		return 0, ErrIDRequired
	}
	if !counter.Valid() {
		return 0, ErrInvalidCounter
	}
	n, err := s.repo.Increment(ctx, id, counter)
	if err != nil {
		return 0, notFound(err)
	}
	return n, nil
}

func (s *postService) Comments(ctx context.Context, postID string) ([]model.Comment, error) {
	if _, err := s.publishedByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *postService) AddComment(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: empty comment", ErrInvalidInput)
	}
	c.AuthorName = strings.TrimSpace(c.AuthorName)
	c.AuthorEmail = strings.TrimSpace(c.AuthorEmail)
	c.Content = strings.TrimSpace(c.Content)
	if err := required("author_name", c.AuthorName); err != nil {
		return nil, err
	}
	if err := required("content", c.Content); err != nil {
		return nil, err
	}
	if len([]rune(c.Content)) > maxCommentLength {
		return nil, fmt.Errorf("%w: content is longer than %d characters", ErrInvalidInput, maxCommentLength)
	}
	if c.AuthorEmail != "" && !validEmail(c.AuthorEmail) {
		return nil, fmt.Errorf("%w: author_email is not a valid address", ErrInvalidInput)
	}
	if _, err := s.publishedByID(ctx, c.PostID); err != nil {
		return nil, err
	}
	return s.comments.Create(ctx, c)
}

func (s *postService) DeleteComment(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.comments.Delete(ctx, id)
}

func (s *postService) publishedByID(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	return p, nil
}

// ConvertLegacyLinks only writes posts whose body actually changed; running it twice updates nothing.
func (s *postService) ConvertLegacyLinks(ctx context.Context) (*LinkConversion, error) {
	posts, err := s.repo.ListContents(ctx)
	if err != nil {
		return nil, err
	}
	res := &LinkConversion{Scanned: len(posts)}
	for _, p := range posts {
		linked := content.Linkify(p.Content)
		if linked == p.Content {
			continue
		}
		if err := s.repo.UpdateContent(ctx, p.ID, linked); err != nil {
			return res, fmt.Errorf("update post %s: %w", p.ID, err)
		}
		res.Updated++
	}
	return res, nil
}
