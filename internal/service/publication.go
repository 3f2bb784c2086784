package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"abcip/internal/model"
	"abcip/internal/repository"
	"abcip/internal/storage"
)

// DownloadURLExpiry bounds the lifetime of presigned publication links.
const DownloadURLExpiry = 15 * time.Minute

// PublicationService manages downloadable documents.
type PublicationService interface {
	List(ctx context.Context, activeOnly bool) ([]model.Publication, error)
	Get(ctx context.Context, id string) (*model.Publication, error)
	// Save creates or updates a publication; file and cover are optional uploads.
	// A new publication needs either an uploaded file or an external FileURL.
	Save(ctx context.Context, p *model.Publication, file, cover *Upload) (*model.Publication, error)
	Delete(ctx context.Context, id string) error
	// DownloadURL returns a presigned link for stored files, or the external URL.
	// Inactive publications are reported as ErrNotFound.
	DownloadURL(ctx context.Context, id string) (string, error)
}

type publicationService struct {
	store storage.Storage
	repo  repository.PublicationRepository
}

func NewPublicationService(store storage.Storage, repo repository.PublicationRepository) PublicationService {
	return &publicationService{store: store, repo: repo}
}

func (s *publicationService) List(ctx context.Context, activeOnly bool) ([]model.Publication, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *publicationService) Get(ctx context.Context, id string) (*model.Publication, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *publicationService) Save(ctx context.Context, p *model.Publication, file, cover *Upload) (*model.Publication, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: empty publication", ErrInvalidInput)
	}
	p.Title = strings.TrimSpace(p.Title)
	p.FileURL = strings.TrimSpace(p.FileURL)
	if err := required("title", p.Title); err != nil {
		return nil, err
	}

	var previous *model.Publication
	if p.ID != "" {
		existing, err := s.repo.FindByID(ctx, p.ID)
		if err != nil {
			return nil, notFound(err)
		}
		previous = existing
		if p.FileURL == "" {
			p.FileURL = existing.FileURL
			p.FileKey = existing.FileKey
		}
		if p.CoverImageURL == "" {
			p.CoverImageURL = existing.CoverImageURL
		}
	}
	if p.FileURL == "" && file == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	stage := newStaging(s.store)
	if file != nil {
		if err := stage.put(ctx, "publications", file, &p.FileURL); err != nil {
			return nil, err
		}
		p.FileKey = stage.uploaded[len(stage.uploaded)-1]
	} else if key, ok := s.store.KeyFromURL(p.FileURL); ok {
		p.FileKey = key
	} else {
		p.FileKey = ""
	}
	if err := stage.put(ctx, "publications/covers", cover, &p.CoverImageURL); err != nil {
		stage.abort(ctx)
		return nil, err
	}
	if previous != nil {
		stage.supersede(previous.FileURL, p.FileURL)
		stage.supersede(previous.CoverImageURL, p.CoverImageURL)
	}

	var (
		saved *model.Publication
		err   error
	)
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

func (s *publicationService) Delete(ctx context.Context, id string) error {
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
	discard(ctx, s.store, p.FileURL)
	discard(ctx, s.store, p.CoverImageURL)
	return nil
}

func (s *publicationService) DownloadURL(ctx context.Context, id string) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !p.Active {
		return "", ErrNotFound
	}
	if p.FileKey == "" {
		if p.FileURL == "" {
			return "", ErrNotFound
		}
		return p.FileURL, nil
	}
	u, err := s.store.PresignGet(ctx, p.FileKey, DownloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}
