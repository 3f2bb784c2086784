package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"abcip/internal/model"
	"abcip/internal/service"
)

const homeLatestPosts = 3

// HomePage renders the carousel, latest news, associates, videos and the CTA.
func HomePage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		banners, err := svc.Banners.List(ctx, true)
		if err != nil {
			return err
		}
		latest, err := svc.Posts.List(ctx, service.PostQuery{Page: 1, PerPage: homeLatestPosts, PublishedOnly: true})
		if err != nil {
			return err
		}
		associates, err := svc.Associates.List(ctx, true)
		if err != nil {
			return err
		}
		videos, err := svc.Videos.List(ctx, true)
		if err != nil {
			return err
		}

		return renderPage(c, "public/home", fiber.Map{
			"Banners":    banners,
			"Posts":      latest.Items,
			"Associates": associates,
			"Videos":     videos,
		})
	}
}

// NewsPage renders the paginated news grid, optionally filtered by ?categoria=.
func NewsPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		category := strings.TrimSpace(c.Query("categoria"))

		res, err := svc.Posts.List(ctx, service.PostQuery{
			Page:          queryPage(c),
			Category:      category,
			PublishedOnly: true,
		})
		if err != nil {
			return err
		}
		categories, err := svc.Posts.Categories(ctx)
		if err != nil {
			return err
		}
		banner, err := svc.Settings.PageBanner(ctx, model.PageNews)
		if err != nil {
			return err
		}

		return renderPage(c, "public/news", fiber.Map{
			"Title":      banner.Title,
			"Banner":     banner,
			"Result":     res,
			"Category":   category,
			"Categories": categories,
		})
	}
}

// NewsDetailPage renders one published post with its comments.
func NewsDetailPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		post, err := svc.Posts.GetPublished(ctx, c.Params("slug"))
		if err != nil {
			return pageError(err)
		}
		comments, err := svc.Posts.Comments(ctx, post.ID)
		if err != nil {
			return pageError(err)
		}

		return renderPage(c, "public/news_detail", fiber.Map{
			"Title":    post.Title,
			"Post":     post,
			"Comments": comments,
		})
	}
}

// AssociatesPage renders the member directory.
func AssociatesPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		associates, err := svc.Associates.List(ctx, true)
		if err != nil {
			return err
		}
		banner, err := svc.Settings.PageBanner(ctx, model.PageAssociates)
		if err != nil {
			return err
		}

		return renderPage(c, "public/associates", fiber.Map{
			"Title":      banner.Title,
			"Banner":     banner,
			"Associates": associates,
		})
	}
}

// PublicationsPage renders the active publications.
func PublicationsPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		pubs, err := svc.Publications.List(ctx, true)
		if err != nil {
			return err
		}
		banner, err := svc.Settings.PageBanner(ctx, model.PagePublications)
		if err != nil {
			return err
		}

		return renderPage(c, "public/publications", fiber.Map{
			"Title":        banner.Title,
			"Banner":       banner,
			"Publications": pubs,
		})
	}
}

// DownloadPublication redirects to a short-lived link for the publication file.
func DownloadPublication(publications service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validID(c)
		if !ok {
			return fiber.ErrNotFound
		}
		target, err := publications.DownloadURL(c.UserContext(), id)
		if err != nil {
			return pageError(err)
		}
		return c.Redirect(target, fiber.StatusFound)
	}
}

// AboutPage renders the board, the executive team and the committees.
func AboutPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		members, err := svc.Team.List(ctx, true)
		if err != nil {
			return err
		}
		committees, err := svc.Committees.List(ctx, true)
		if err != nil {
			return err
		}
		banner, err := svc.Settings.PageBanner(ctx, model.PageAbout)
		if err != nil {
			return err
		}

		var board, team []model.TeamMember
		for _, m := range members {
			if m.Group == model.TeamGroupBoard {
				board = append(board, m)
			} else {
				team = append(team, m)
			}
		}

		return renderPage(c, "public/about", fiber.Map{
			"Title":      banner.Title,
			"Banner":     banner,
			"Board":      board,
			"Team":       team,
			"Committees": committees,
		})
	}
}

// SearchPage renders matches for ?q= across posts, associates and publications.
func SearchPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		res, err := svc.Search.Search(c.UserContext(), q)
		if err != nil {
			return err
		}
		return renderPage(c, "public/search", fiber.Map{
			"Title":  "Busca",
			"Query":  q,
			"Result": res,
		})
	}
}

// ContactPage renders the contact form.
func ContactPage(svc Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		banner, err := svc.Settings.PageBanner(c.UserContext(), model.PageContact)
		if err != nil {
			return err
		}
		return renderPage(c, "public/contact", fiber.Map{
			"Title":  banner.Title,
			"Banner": banner,
		})
	}
}

// SubmitContact stores a contact message and redirects back with a toast.
func SubmitContact(svc Services, opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msg := &model.ContactMessage{
			Name:    formString(c, "name"),
			Email:   formString(c, "email"),
			Phone:   formString(c, "phone"),
			Company: formString(c, "company"),
			Subject: formString(c, "subject"),
			Message: formString(c, "message"),
		}
		if _, err := svc.Contact.Submit(c.UserContext(), msg); err != nil {
			return failToast(c, opt.Log, "/contato", "enviar sua mensagem", err)
		}
		return redirectToast(c, "/contato", toastSuccess, "Mensagem enviada! Em breve entraremos em contato.")
	}
}
