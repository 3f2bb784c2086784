package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"abcip/internal/model"
	"abcip/internal/repository"
)

const (
	minSearchLength   = 2
	searchResultLimit = 20
)

// SearchResult groups the matches of a site search.
type SearchResult struct {
	Query        string              `json:"query"`
	Posts        []model.Post        `json:"posts"`
	Associates   []model.Associate   `json:"associates"`
	Publications []model.Publication `json:"publications"`
}

// Total is the number of matches across all groups.
func (r *SearchResult) Total() int {
	return len(r.Posts) + len(r.Associates) + len(r.Publications)
}

// SearchService looks a term up in published posts, active associates and active publications.
type SearchService interface {
	// Search returns an empty result for terms shorter than two characters.
	Search(ctx context.Context, q string) (*SearchResult, error)
}

type searchService struct {
	posts        repository.PostRepository
	associates   repository.AssociateRepository
	publications repository.PublicationRepository
}

func NewSearchService(posts repository.PostRepository, associates repository.AssociateRepository, publications repository.PublicationRepository) SearchService {
	return &searchService{posts: posts, associates: associates, publications: publications}
}

func (s *searchService) Search(ctx context.Context, q string) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	res := &SearchResult{
		Query:        q,
		Posts:        []model.Post{},
		Associates:   []model.Associate{},
		Publications: []model.Publication{},
	}
	if utf8.RuneCountInString(q) < minSearchLength {
		return res, nil
	}

	posts, err := s.posts.List(ctx, repository.PostFilter{
		PublishedOnly: true,
		Query:         q,
		Page:          repository.PageQuery{Limit: searchResultLimit},
	})
	if err != nil {
		return nil, err
	}
	res.Posts = posts.Items

	if res.Associates, err = s.associates.Search(ctx, q, searchResultLimit); err != nil {
		return nil, err
	}
	if res.Publications, err = s.publications.Search(ctx, q, searchResultLimit); err != nil {
		return nil, err
	}
	return res, nil
}
