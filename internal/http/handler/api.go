package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"abcip/internal/model"
	"abcip/internal/service"
)

// validID rejects path ids that are not UUIDs before they reach the database.
func validID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

type countResponse struct {
	Count int `json:"count"`
}

// IncrementCounter bumps one engagement counter of a published post.
//
//	@Summary	Increment a post counter
//	@Tags		posts
//	@Produce	json
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	countResponse
//	@Failure	400	{object}	middleware.ErrorPayload
//	@Failure	404	{object}	middleware.ErrorPayload
//	@Router		/api/posts/{id}/views [post]
//	@Router		/api/posts/{id}/likes [post]
//	@Router		/api/posts/{id}/shares [post]
func IncrementCounter(posts service.PostService, counter model.Counter, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		n, err := posts.Engage(c.UserContext(), id, counter)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(countResponse{Count: n})
	}
}

// ListComments returns the comments of a published post, oldest first.
//
//	@Summary	List comments
//	@Tags		posts
//	@Produce	json
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{array}		model.Comment
//	@Failure	404	{object}	middleware.ErrorPayload
//	@Router		/api/posts/{id}/comments [get]
func ListComments(posts service.PostService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := posts.Comments(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		if items == nil {
			items = []model.Comment{}
		}
		return c.JSON(items)
	}
}

type commentRequest struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
}

// AddComment posts a reader comment.
//
//	@Summary	Add a comment
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Post ID"
//	@Param		body	body		commentRequest	true	"Comment"
//	@Success	201		{object}	model.Comment
//	@Failure	400		{object}	middleware.ErrorPayload
//	@Failure	404		{object}	middleware.ErrorPayload
//	@Router		/api/posts/{id}/comments [post]
func AddComment(posts service.PostService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req commentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		created, err := posts.AddComment(c.UserContext(), &model.Comment{
			PostID:      id,
			AuthorName:  req.AuthorName,
			AuthorEmail: req.AuthorEmail,
			Content:     req.Content,
		})
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

type bannerRequest struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ImageURL   string `json:"image_url"`
	LinkURL    string `json:"link_url"`
	ButtonText string `json:"button_text"`
	Active     *bool  `json:"active"`
}

func (r bannerRequest) apply(b *model.Banner) {
	b.Title = r.Title
	b.Subtitle = r.Subtitle
	b.LinkURL = r.LinkURL
	b.ButtonText = r.ButtonText
	if r.ImageURL != "" {
		b.ImageURL = r.ImageURL
	}
	if r.Active != nil {
		b.Active = *r.Active
	}
}

// CreateBanner adds a carousel slide at the end of the order.
//
//	@Summary	Create banner
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		bannerRequest	true	"Banner"
//	@Success	201		{object}	model.Banner
//	@Failure	400		{object}	middleware.ErrorPayload
//	@Failure	401		{object}	middleware.ErrorPayload
//	@Router		/api/admin/banners [post]
func CreateBanner(banners service.BannerService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bannerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		b := &model.Banner{Active: true}
		req.apply(b)

		saved, err := banners.Save(c.UserContext(), b, nil)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
}

// UpdateBanner replaces the editable fields of a slide. Omitted image_url and
// active keep their stored values.
//
//	@Summary	Update banner
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Banner ID"
//	@Param		body	body		bannerRequest	true	"Banner"
//	@Success	200		{object}	model.Banner
//	@Failure	400		{object}	middleware.ErrorPayload
//	@Failure	404		{object}	middleware.ErrorPayload
//	@Router		/api/admin/banners/{id} [put]
func UpdateBanner(banners service.BannerService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req bannerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		current, err := banners.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		req.apply(current)

		saved, err := banners.Save(c.UserContext(), current, nil)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(saved)
	}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// BulkDeleteAssociates removes several associates at once.
//
//	@Summary	Bulk delete associates
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		bulkDeleteRequest	true	"IDs"
//	@Success	200		{object}	bulkDeleteResponse
//	@Failure	400		{object}	middleware.ErrorPayload
//	@Router		/api/admin/associates/bulk-delete [post]
func BulkDeleteAssociates(associates service.AssociateService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkDeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		n, err := associates.BulkDelete(c.UserContext(), req.IDs)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(bulkDeleteResponse{Deleted: n})
	}
}

type moveRequest struct {
	Direction string `json:"direction"`
}

// MoveAssociate swaps an associate with its neighbour in display order.
// Moving past either end succeeds without changes.
//
//	@Summary	Move associate
//	@Tags		admin
//	@Accept		json
//	@Param		id		path	string		true	"Associate ID"
//	@Param		body	body	moveRequest	true	"Direction"
//	@Success	204
//	@Failure	400	{object}	middleware.ErrorPayload
//	@Failure	404	{object}	middleware.ErrorPayload
//	@Router		/api/admin/associates/{id}/move [post]
func MoveAssociate(associates service.AssociateService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req moveRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := associates.Move(c.UserContext(), id, req.Direction); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ConvertLinks turns bare URLs in every post body into anchors.
//
//	@Summary	Convert legacy links
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	service.LinkConversion
//	@Router		/api/admin/posts/convert-links [post]
func ConvertLinks(posts service.PostService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := posts.ConvertLegacyLinks(c.UserContext())
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(res)
	}
}
