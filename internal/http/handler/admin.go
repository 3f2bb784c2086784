package handler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"abcip/internal/http/middleware"
	"abcip/internal/model"
	"abcip/internal/service"
)

const adminPostsPerPage = 20

// safeNext only follows redirects back into the admin area.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "/admin/login") {
		return next
	}
	return "/admin"
}

// AdminLoginPage renders the sign-in form. Signed-in admins go straight to the dashboard.
func AdminLoginPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if middleware.AdminFromCtx(c) != nil {
			return c.Redirect(safeNext(c.Query("next")), fiber.StatusSeeOther)
		}
		return c.Render("admin/login", baseData(c, fiber.Map{
			"Title": "Entrar",
			"Next":  c.Query("next"),
			"Email": c.Query("email"),
		}))
	}
}

// AdminLogin checks the submitted credentials and sets the session cookie.
func AdminLogin(auth service.AuthService, opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := formString(c, "email")
		next := c.FormValue("next")

		sess, err := auth.Login(c.UserContext(), email, c.FormValue("password"))
		if err != nil {
			back := "/admin/login?next=" + url.QueryEscape(next) + "&email=" + url.QueryEscape(email)
			return failToast(c, opt.Log, back, "entrar", err)
		}
		setSessionCookie(c, sess.Token, sess.ExpiresAt, opt.CookieSecure)
		opt.Log.WithField("request_id", middleware.RequestIDFromCtx(c)).WithField("user_id", sess.User.ID).Info("admin signed in")
		return c.Redirect(safeNext(next), fiber.StatusSeeOther)
	}
}

// AdminLogout clears the session and returns to the sign-in form.
func AdminLogout(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clearSessionCookie(c, opt.CookieSecure)
		return redirectToast(c, "/admin/login", toastSuccess, "Sessão encerrada.")
	}
}

// AdminDashboard renders the content counters.
func AdminDashboard(dashboard service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := dashboard.Stats(c.UserContext())
		if err != nil {
			return err
		}
		return renderAdmin(c, "admin/dashboard", fiber.Map{"Title": "Painel", "Stats": stats})
	}
}

type adminPosts struct {
	posts service.PostService
	opt   Options
}

func (h adminPosts) list(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	res, err := h.posts.List(c.UserContext(), service.PostQuery{
		Page:    queryPage(c),
		PerPage: adminPostsPerPage,
		Search:  q,
	})
	if err != nil {
		return err
	}
	return renderAdmin(c, "admin/posts/list", fiber.Map{"Title": "Notícias", "Result": res, "Query": q})
}

func (h adminPosts) newForm(c *fiber.Ctx) error {
	return renderAdmin(c, "admin/posts/form", fiber.Map{
		"Title":  "Nova notícia",
		"Item":   &model.Post{},
		"Action": "/admin/posts",
	})
}

func (h adminPosts) editForm(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	p, err := h.posts.Get(c.UserContext(), id)
	if err != nil {
		return pageError(err)
	}
	return renderAdmin(c, "admin/posts/form", fiber.Map{
		"Title":  "Editar notícia",
		"Item":   p,
		"Action": "/admin/posts/" + id,
	})
}

func (h adminPosts) save(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" {
		if _, ok := validID(c); !ok {
			return fiber.ErrNotFound
		}
	}

	var files formFiles
	defer files.Close()
	cover, err := files.get(c, "cover")
	if err != nil {
		return failToast(c, h.opt.Log, "/admin/posts", "ler o arquivo enviado", err)
	}

	p := &model.Post{
		ID:          id,
		Title:       formString(c, "title"),
		Slug:        formString(c, "slug"),
		Excerpt:     formString(c, "excerpt"),
		Content:     c.FormValue("content"),
		Author:      formString(c, "author"),
		Category:    formString(c, "category"),
		Published:   formBool(c, "published"),
		PublishedAt: formTime(c, "published_at", h.opt.location()),
	}
	if _, err := h.posts.Save(c.UserContext(), p, cover); err != nil {
		return failToast(c, h.opt.Log, "/admin/posts", "salvar a notícia", err)
	}
	return redirectToast(c, "/admin/posts", toastSuccess, "Notícia salva.")
}

func (h adminPosts) delete(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.posts.Delete(c.UserContext(), id); err != nil {
		return failToast(c, h.opt.Log, "/admin/posts", "excluir a notícia", err)
	}
	return redirectToast(c, "/admin/posts", toastSuccess, "Notícia excluída.")
}

func (h adminPosts) comments(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()
	p, err := h.posts.Get(ctx, id)
	if err != nil {
		return pageError(err)
	}
	var items []model.Comment
	if p.Published {
		if items, err = h.posts.Comments(ctx, id); err != nil {
			return err
		}
	}
	return renderAdmin(c, "admin/posts/comments", fiber.Map{"Title": "Comentários", "Post": p, "Items": items})
}

func (h adminPosts) deleteComment(c *fiber.Ctx) error {
	back := safeNext(c.FormValue("back"))
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.posts.DeleteComment(c.UserContext(), id); err != nil {
		return failToast(c, h.opt.Log, back, "excluir o comentário", err)
	}
	return redirectToast(c, back, toastSuccess, "Comentário excluído.")
}

func (h adminPosts) convertLinks(c *fiber.Ctx) error {
	res, err := h.posts.ConvertLegacyLinks(c.UserContext())
	if err != nil {
		return failToast(c, h.opt.Log, "/admin/posts", "converter os links", err)
	}
	return redirectToast(c, "/admin/posts", toastSuccess,
		fmt.Sprintf("Links convertidos em %d de %d notícias.", res.Updated, res.Scanned))
}

type adminPublications struct {
	publications service.PublicationService
	opt          Options
}

func (h adminPublications) list(c *fiber.Ctx) error {
	items, err := h.publications.List(c.UserContext(), false)
	if err != nil {
		return err
	}
	return renderAdmin(c, "admin/publications/list", fiber.Map{"Title": "Publicações", "Items": items})
}

func (h adminPublications) newForm(c *fiber.Ctx) error {
	return renderAdmin(c, "admin/publications/form", fiber.Map{
		"Title":  "Nova publicação",
		"Item":   &model.Publication{Active: true},
		"Action": "/admin/publications",
	})
}

func (h adminPublications) editForm(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	p, err := h.publications.Get(c.UserContext(), id)
	if err != nil {
		return pageError(err)
	}
	return renderAdmin(c, "admin/publications/form", fiber.Map{
		"Title":  "Editar publicação",
		"Item":   p,
		"Action": "/admin/publications/" + id,
	})
}

func (h adminPublications) save(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" {
		if _, ok := validID(c); !ok {
			return fiber.ErrNotFound
		}
	}

	var files formFiles
	defer files.Close()
	file, err := files.get(c, "file")
	if err != nil {
		return failToast(c, h.opt.Log, "/admin/publications", "ler o arquivo enviado", err)
	}
	cover, err := files.get(c, "cover")
	if err != nil {
		return failToast(c, h.opt.Log, "/admin/publications", "ler o arquivo enviado", err)
	}

	p := &model.Publication{
		ID:          id,
		Title:       formString(c, "title"),
		Description: formString(c, "description"),
		Category:    formString(c, "category"),
		FileURL:     formString(c, "file_url"),
		PublishedAt: formTime(c, "published_at", h.opt.location()),
		Active:      formBool(c, "active"),
	}
	if _, err := h.publications.Save(c.UserContext(), p, file, cover); err != nil {
		return failToast(c, h.opt.Log, "/admin/publications", "salvar a publicação", err)
	}
	return redirectToast(c, "/admin/publications", toastSuccess, "Publicação salva.")
}

func (h adminPublications) delete(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.publications.Delete(c.UserContext(), id); err != nil {
		return failToast(c, h.opt.Log, "/admin/publications", "excluir a publicação", err)
	}
	return redirectToast(c, "/admin/publications", toastSuccess, "Publicação excluída.")
}

type adminMessages struct {
	contact service.ContactService
	opt     Options
}

func (h adminMessages) list(c *fiber.Ctx) error {
	page := queryPage(c)
	res, err := h.contact.List(c.UserContext(), service.DefaultMessagesPerPage, (page-1)*service.DefaultMessagesPerPage)
	if err != nil {
		return err
	}
	pages := (res.Total + service.DefaultMessagesPerPage - 1) / service.DefaultMessagesPerPage
	return renderAdmin(c, "admin/messages", fiber.Map{
		"Title":      "Mensagens",
		"Items":      res.Items,
		"Total":      res.Total,
		"Page":       page,
		"TotalPages": pages,
	})
}

func (h adminMessages) markRead(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.contact.MarkRead(c.UserContext(), id, formBool(c, "read")); err != nil {
		return failToast(c, h.opt.Log, "/admin/messages", "atualizar a mensagem", err)
	}
	return c.Redirect("/admin/messages", fiber.StatusSeeOther)
}

func (h adminMessages) delete(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.contact.Delete(c.UserContext(), id); err != nil {
		return failToast(c, h.opt.Log, "/admin/messages", "excluir a mensagem", err)
	}
	return redirectToast(c, "/admin/messages", toastSuccess, "Mensagem excluída.")
}

type adminSettings struct {
	settings service.SettingsService
	opt      Options
}

func (h adminSettings) form(c *fiber.Ctx) error {
	ctx := c.UserContext()
	site, err := h.settings.Site(ctx)
	if err != nil {
		return err
	}
	footer, err := h.settings.Footer(ctx)
	if err != nil {
		return err
	}
	return renderAdmin(c, "admin/settings", fiber.Map{
		"Title":       "Configurações",
		"SiteForm":    site,
		"FooterForm":  footer,
		"PageBanners": model.PageKeys,
	})
}

func (h adminSettings) saveSite(c *fiber.Ctx) error {
	var files formFiles
	defer files.Close()
	logo, err := files.get(c, "logo")
	if err != nil {
		return failToast(c, h.opt.Log, "/admin/settings", "ler o arquivo enviado", err)
	}
	favicon, err := files.get(c, "favicon")
	if err != nil {
		return failToast(c, h.opt.Log, "/admin/settings", "ler o arquivo enviado", err)
	}

	s := &model.SiteSettings{
		SiteName:        formString(c, "site_name"),
		Tagline:         formString(c, "tagline"),
		ContactEmail:    formString(c, "contact_email"),
		ContactPhone:    formString(c, "contact_phone"),
		WhatsApp:        formString(c, "whatsapp"),
		Address:         formString(c, "address"),
		FacebookURL:     formString(c, "facebook_url"),
		InstagramURL:    formString(c, "instagram_url"),
		LinkedInURL:     formString(c, "linkedin_url"),
		YouTubeURL:      formString(c, "youtube_url"),
		MetaTitle:       formString(c, "meta_title"),
		MetaDescription: formString(c, "meta_description"),
		CTATitle:        formString(c, "cta_title"),
		CTAText:         formString(c, "cta_text"),
		CTAButtonText:   formString(c, "cta_button_text"),
		CTAButtonLink:   formString(c, "cta_button_link"),
	}
	if _, err := h.settings.SaveSite(c.UserContext(), s, logo, favicon); err != nil {
		return failToast(c, h.opt.Log, "/admin/settings", "salvar as configurações", err)
	}
	return redirectToast(c, "/admin/settings", toastSuccess, "Configurações salvas.")
}

func (h adminSettings) saveFooter(c *fiber.Ctx) error {
	f := &model.FooterSettings{
		Description:   formString(c, "description"),
		CopyrightText: formString(c, "copyright_text"),
		Email:         formString(c, "email"),
		Phone:         formString(c, "phone"),
		Address:       formString(c, "address"),
		FacebookURL:   formString(c, "facebook_url"),
		InstagramURL:  formString(c, "instagram_url"),
		LinkedInURL:   formString(c, "linkedin_url"),
		YouTubeURL:    formString(c, "youtube_url"),
	}
	if _, err := h.settings.SaveFooter(c.UserContext(), f); err != nil {
		return failToast(c, h.opt.Log, "/admin/settings", "salvar o rodapé", err)
	}
	return redirectToast(c, "/admin/settings", toastSuccess, "Rodapé salvo.")
}

func (h adminSettings) pageBannerForm(c *fiber.Ctx) error {
	page := model.PageKey(c.Params("page"))
	if !page.Valid() {
		return fiber.ErrNotFound
	}
	b, err := h.settings.PageBanner(c.UserContext(), page)
	if err != nil {
		return pageError(err)
	}
	return renderAdmin(c, "admin/page_banner", fiber.Map{"Title": "Banner da página", "Item": b})
}

func (h adminSettings) savePageBanner(c *fiber.Ctx) error {
	page := model.PageKey(c.Params("page"))
	if !page.Valid() {
		return fiber.ErrNotFound
	}
	back := "/admin/page-banners/" + string(page)

	var files formFiles
	defer files.Close()
	image, err := files.get(c, "image")
	if err != nil {
		return failToast(c, h.opt.Log, back, "ler o arquivo enviado", err)
	}

	b := &model.PageBanner{
		Page:     page,
		Title:    formString(c, "title"),
		Subtitle: formString(c, "subtitle"),
	}
	if _, err := h.settings.SavePageBanner(c.UserContext(), b, image); err != nil {
		return failToast(c, h.opt.Log, back, "salvar o banner", err)
	}
	return redirectToast(c, back, toastSuccess, "Banner salvo.")
}

// Options.location falls back to UTC so form dates always parse.
func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}
