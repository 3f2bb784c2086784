package service

import (
	"context"
	"testing"

	"abcip/internal/model"
	"abcip/internal/repository"
	repoMocks "abcip/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("short terms skip the database", func(t *testing.T) {
		svc := NewSearchService(new(repoMocks.MockPostRepository), new(repoMocks.MockAssociateRepository), new(repoMocks.MockPublicationRepository))

		res, err := svc.Search(ctx, " a ")

		require.NoError(t, err)
		assert.Equal(t, "a", res.Query)
		assert.Zero(t, res.Total())
		assert.NotNil(t, res.Posts)
	})

	t.Run("groups matches", func(t *testing.T) {
		posts := new(repoMocks.MockPostRepository)
		assoc := new(repoMocks.MockAssociateRepository)
		pubs := new(repoMocks.MockPublicationRepository)
		svc := NewSearchService(posts, assoc, pubs)

		posts.On("List", ctx, repository.PostFilter{
			PublishedOnly: true,
			Query:         "led",
			Page:          repository.PageQuery{Limit: searchResultLimit},
		}).Return(&repository.PageResult[model.Post]{Items: []model.Post{{ID: "p1"}}, Total: 1}, nil)
		assoc.On("Search", ctx, "led", searchResultLimit).Return([]model.Associate{{ID: "a1"}, {ID: "a2"}}, nil)
		pubs.On("Search", ctx, "led", searchResultLimit).Return([]model.Publication{}, nil)

		res, err := svc.Search(ctx, "led")

		require.NoError(t, err)
		assert.Equal(t, 3, res.Total())
		posts.AssertExpectations(t)
		assoc.AssertExpectations(t)
		pubs.AssertExpectations(t)
	})
}
