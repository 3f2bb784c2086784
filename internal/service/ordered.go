package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abcip/internal/content"
	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
	"abcip/internal/storage"
)

// OrderedService manages the admin lists that are sorted by hand
// (banners, associates, team, committees, videos).
type OrderedService[T any] interface {
	// List returns records by display order; activeOnly hides disabled ones.
	List(ctx context.Context, activeOnly bool) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// Save creates the record when its ID is empty, otherwise updates it.
	// New records go to the end of the list; updates keep their position.
	// image, when given, replaces the record's picture.
	Save(ctx context.Context, item *T, image *Upload) (*T, error)
	Delete(ctx context.Context, id string) error
	// Move swaps the record with its neighbor. Moving past either end is a no-op.
	Move(ctx context.Context, id, direction string) error
}

type (
	BannerService    = OrderedService[model.Banner]
	TeamService      = OrderedService[model.TeamMember]
	CommitteeService = OrderedService[model.Committee]
	VideoService     = OrderedService[model.Video]
)

// AssociateService adds bulk removal to the associates list.
type AssociateService interface {
	OrderedService[model.Associate]
	// BulkDelete removes every listed associate and reports how many existed.
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

// recordKind describes how the shared ordered service reads and checks one record type.
type recordKind[T any] struct {
	folder string
	id     func(*T) *string
	order  func(*T) *int
	// image is nil for records without an uploaded picture.
	image        func(*T) *string
	requireImage bool
	// prepare validates and normalizes the record before it is written.
	prepare func(*T) error
}

type orderedService[T any] struct {
	repo  repository.OrderedRepository[T]
	store storage.Storage
	kind  recordKind[T]
}

func (s *orderedService[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *orderedService[T]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (s *orderedService[T]) Save(ctx context.Context, item *T, image *Upload) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: empty record", ErrInvalidInput)
	}
	if err := s.kind.prepare(item); err != nil {
		return nil, err
	}

	id := *s.kind.id(item)
	var previousImage string
	if id != "" {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err)
		}
		*s.kind.order(item) = *s.kind.order(existing)
		if s.kind.image != nil {
			previousImage = *s.kind.image(existing)
			if *s.kind.image(item) == "" {
				*s.kind.image(item) = previousImage
			}
		}
	} else {
		next, err := s.repo.NextOrder(ctx)
		if err != nil {
			return nil, err
		}
		*s.kind.order(item) = next
	}

	stage := newStaging(s.store)
	if s.kind.image != nil {
		if s.kind.requireImage && *s.kind.image(item) == "" && image == nil {
			return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
		}
		if err := stage.put(ctx, s.kind.folder, image, s.kind.image(item)); err != nil {
			return nil, err
		}
		stage.supersede(previousImage, *s.kind.image(item))
	}

	var (
		saved *T
		err   error
	)
	if id == "" {
		saved, err = s.repo.Create(ctx, item)
	} else {
		saved, err = s.repo.Update(ctx, item)
	}
	if err != nil {
		return nil, stage.fail(ctx, notFound(err))
	}
	stage.done(ctx)
	return saved, nil
}

func (s *orderedService[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.kind.image != nil {
		discard(ctx, s.store, *s.kind.image(item))
	}
	return nil
}

func (s *orderedService[T]) Move(ctx context.Context, id, direction string) error {
	if id == "" {
		return ErrIDRequired
	}
	dir, err := ordering.ParseDirection(direction)
	if err != nil {
		return ErrInvalidDirection
	}
	err = s.repo.Move(ctx, id, dir)
	if errors.Is(err, ordering.ErrNoNeighbor) {
		return nil
	}
	return notFound(err)
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return nil
}

// NewBannerService constructs the home carousel service.
func NewBannerService(store storage.Storage, repo repository.BannerRepository) BannerService {
	return &orderedService[model.Banner]{
		repo:  repo,
		store: store,
		kind: recordKind[model.Banner]{
			folder:       "banners",
			id:           func(b *model.Banner) *string { return &b.ID },
			order:        func(b *model.Banner) *int { return &b.DisplayOrder },
			image:        func(b *model.Banner) *string { return &b.ImageURL },
			requireImage: true,
			prepare: func(b *model.Banner) error {
				b.Title = strings.TrimSpace(b.Title)
				b.LinkURL = strings.TrimSpace(b.LinkURL)
				return nil
			},
		},
	}
}

func NewTeamService(store storage.Storage, repo repository.TeamMemberRepository) TeamService {
	return &orderedService[model.TeamMember]{
		repo:  repo,
		store: store,
		kind: recordKind[model.TeamMember]{
			folder: "team",
			id:     func(m *model.TeamMember) *string { return &m.ID },
			order:  func(m *model.TeamMember) *int { return &m.DisplayOrder },
			image:  func(m *model.TeamMember) *string { return &m.PhotoURL },
			prepare: func(m *model.TeamMember) error {
				m.Name = strings.TrimSpace(m.Name)
				if m.Group == "" {
					m.Group = model.TeamGroupTeam
				}
				if !m.Group.Valid() {
					return fmt.Errorf("%w: unknown group %q", ErrInvalidInput, m.Group)
				}
				return required("name", m.Name)
			},
		},
	}
}

func NewCommitteeService(repo repository.CommitteeRepository) CommitteeService {
	return &orderedService[model.Committee]{
		repo: repo,
		kind: recordKind[model.Committee]{
			id:    func(c *model.Committee) *string { return &c.ID },
			order: func(c *model.Committee) *int { return &c.DisplayOrder },
			prepare: func(c *model.Committee) error {
				c.Name = strings.TrimSpace(c.Name)
				return required("name", c.Name)
			},
		},
	}
}

// NewVideoService derives the YouTube id and thumbnail from the URL on every save.
// A URL that is not recognized as YouTube is stored with an empty id and thumbnail.
func NewVideoService(repo repository.VideoRepository) VideoService {
	return &orderedService[model.Video]{
		repo: repo,
		kind: recordKind[model.Video]{
			id:    func(v *model.Video) *string { return &v.ID },
			order: func(v *model.Video) *int { return &v.DisplayOrder },
			prepare: func(v *model.Video) error {
				v.Title = strings.TrimSpace(v.Title)
				v.YouTubeURL = strings.TrimSpace(v.YouTubeURL)
				if err := required("title", v.Title); err != nil {
					return err
				}
				if err := required("youtube_url", v.YouTubeURL); err != nil {
					return err
				}
				v.YouTubeID = content.ExtractYouTubeID(v.YouTubeURL)
				v.ThumbnailURL = content.YouTubeThumbnail(v.YouTubeURL)
				return nil
			},
		},
	}
}

type associateService struct {
	*orderedService[model.Associate]
	repo repository.AssociateRepository
}

func NewAssociateService(store storage.Storage, repo repository.AssociateRepository) AssociateService {
	return &associateService{
		repo: repo,
		orderedService: &orderedService[model.Associate]{
			repo:  repo,
			store: store,
			kind: recordKind[model.Associate]{
				folder: "associates",
				id:     func(a *model.Associate) *string { return &a.ID },
				order:  func(a *model.Associate) *int { return &a.DisplayOrder },
				image:  func(a *model.Associate) *string { return &a.LogoURL },
				prepare: func(a *model.Associate) error {
					a.Name = strings.TrimSpace(a.Name)
					a.Website = strings.TrimSpace(a.Website)
					return required("name", a.Name)
				},
			},
		},
	}
}

// BulkDelete drops duplicate ids and rejects anything that is not a UUID before touching the database.
func (s *associateService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	seen := make(map[string]bool, len(ids))
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if !validUUID(id) {
			return 0, fmt.Errorf("%w: invalid id %q", ErrInvalidInput, id)
		}
		if !seen[id] {
			seen[id] = true
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return 0, fmt.Errorf("%w: no ids selected", ErrInvalidInput)
	}
	return s.repo.BulkDelete(ctx, clean)
}
