package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"abcip/internal/http/middleware"
	"abcip/internal/logger"
	"abcip/internal/model"
	"abcip/internal/service"
)

// Services bundles the use cases the HTTP layer serves.
type Services struct {
	Posts        service.PostService
	Banners      service.BannerService
	Associates   service.AssociateService
	Team         service.TeamService
	Committees   service.CommitteeService
	Videos       service.VideoService
	Publications service.PublicationService
	Settings     service.SettingsService
	Contact      service.ContactService
	Auth         service.AuthService
	Search       service.SearchService
	Dashboard    service.DashboardService
}

// Options carries the HTTP-layer settings that are not services.
type Options struct {
	Log          logrus.FieldLogger
	CookieSecure bool
	// Location is the timezone admin date inputs are interpreted in.
	Location *time.Location
}

// RegisterRoutes attaches probes, the JSON API, the public pages and the admin panel.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, opt Options) {
	if opt.Log == nil {
		opt.Log = logger.Discard()
	}
	log := opt.Log

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Session resolution is cheap and never rejects; RequireAdmin enforces it.
	app.Use(middleware.Session(svc.Auth))

	api := app.Group("/api")
	api.Post("/posts/:id/views", IncrementCounter(svc.Posts, model.CounterViews, log))
	api.Post("/posts/:id/likes", IncrementCounter(svc.Posts, model.CounterLikes, log))
	api.Post("/posts/:id/shares", IncrementCounter(svc.Posts, model.CounterShares, log))
	api.Get("/posts/:id/comments", ListComments(svc.Posts, log))
	api.Post("/posts/:id/comments", AddComment(svc.Posts, log))

	api.Post("/auth/login", Login(svc.Auth, opt.CookieSecure, log))
	api.Post("/auth/session", SyncSession(svc.Auth, opt.CookieSecure, log))
	api.Post("/auth/logout", Logout(opt.CookieSecure))

	adminAPI := api.Group("/admin", middleware.RequireAdmin("/admin/login"))
	adminAPI.Post("/banners", CreateBanner(svc.Banners, log))
	adminAPI.Put("/banners/:id", UpdateBanner(svc.Banners, log))
	adminAPI.Post("/associates/bulk-delete", BulkDeleteAssociates(svc.Associates, log))
	adminAPI.Post("/associates/:id/move", MoveAssociate(svc.Associates, log))
	adminAPI.Post("/posts/convert-links", ConvertLinks(svc.Posts, log))

	// Site data is attached per route so probes and unknown paths skip the settings lookup.
	site := middleware.SiteData(svc.Settings, log)
	app.Get("/", site, HomePage(svc))
	app.Get("/noticias", site, NewsPage(svc))
	app.Get("/noticias/:slug", site, NewsDetailPage(svc))
	app.Get("/associadas", site, AssociatesPage(svc))
	app.Get("/publicacoes", site, PublicationsPage(svc))
	app.Get("/publicacoes/:id/download", DownloadPublication(svc.Publications))
	app.Get("/sobre", site, AboutPage(svc))
	app.Get("/busca", site, SearchPage(svc))
	app.Get("/contato", site, ContactPage(svc))
	app.Post("/contato", SubmitContact(svc, opt))

	// Sign-in routes come before the guarded group so they stay reachable.
	app.Get("/admin/login", site, middleware.NoCache(), AdminLoginPage())
	app.Post("/admin/login", AdminLogin(svc.Auth, opt))
	app.Get("/admin/logout", AdminLogout(opt))

	admin := app.Group("/admin", middleware.RequireAdmin("/admin/login"), middleware.NoCache(), site)
	admin.Get("/", AdminDashboard(svc.Dashboard))

	posts := adminPosts{posts: svc.Posts, opt: opt}
	admin.Get("/posts", posts.list)
	admin.Get("/posts/new", posts.newForm)
	admin.Post("/posts", posts.save)
	admin.Post("/posts/convert-links", posts.convertLinks)
	admin.Get("/posts/:id/edit", posts.editForm)
	admin.Get("/posts/:id/comments", posts.comments)
	admin.Post("/posts/:id", posts.save)
	admin.Post("/posts/:id/delete", posts.delete)
	admin.Post("/comments/:id/delete", posts.deleteComment)

	pubs := adminPublications{publications: svc.Publications, opt: opt}
	admin.Get("/publications", pubs.list)
	admin.Get("/publications/new", pubs.newForm)
	admin.Post("/publications", pubs.save)
	admin.Get("/publications/:id/edit", pubs.editForm)
	admin.Post("/publications/:id", pubs.save)
	admin.Post("/publications/:id/delete", pubs.delete)

	bannerResource(svc.Banners, log).register(admin)
	associateResource(svc.Associates, log).register(admin)
	teamResource(svc.Team, log).register(admin)
	committeeResource(svc.Committees, log).register(admin)
	videoResource(svc.Videos, log).register(admin)

	msgs := adminMessages{contact: svc.Contact, opt: opt}
	admin.Get("/messages", msgs.list)
	admin.Post("/messages/:id/read", msgs.markRead)
	admin.Post("/messages/:id/delete", msgs.delete)

	settings := adminSettings{settings: svc.Settings, opt: opt}
	admin.Get("/settings", settings.form)
	admin.Post("/settings", settings.saveSite)
	admin.Post("/settings/footer", settings.saveFooter)
	admin.Get("/page-banners/:page", settings.pageBannerForm)
	admin.Post("/page-banners/:page", settings.savePageBanner)
}
