package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"abcip/docs"
	"abcip/internal/config"
	"abcip/internal/database"
	"abcip/internal/database/migration"
	handlers "abcip/internal/http/handler"
	"abcip/internal/http/middleware"
	"abcip/internal/logger"
	"abcip/internal/otel"
	"abcip/internal/repository/postgres"
	"abcip/internal/service"
	"abcip/internal/storage"
	"abcip/web"
)

const shutdownTimeout = 10 * time.Second

// @title						ABCIP Site API
// @version					1.0
// @description				JSON endpoints behind the public site and the admin panel.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logger.New(os.Stdout, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize object storage")
	}

	svc, err := newServices(ctx, db, objStore, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize services")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		Views:        web.NewEngine(loc),
		BodyLimit:    cfg.BodyLimit(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware(otelfiber.WithNext(skipTracing)))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		MaxAge: 86400,
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, db, svc, handlers.Options{
		Log:          log,
		CookieSecure: cfg.Auth.CookieSecure,
		Location:     loc,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown")
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.WithError(err).Error("tracing shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// newServices builds the repositories and use cases and makes sure the
// bootstrap admin account exists.
func newServices(ctx context.Context, db *sql.DB, store storage.Storage, cfg *config.AppConfig, log logrus.FieldLogger) (handlers.Services, error) {
	posts := postgres.NewPostPostgres(db)
	associates := postgres.NewAssociatePostgres(db)
	publications := postgres.NewPublicationPostgres(db)

	auth, err := service.NewAuthService(postgres.NewUserPostgres(db), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	if err != nil {
		return handlers.Services{}, err
	}
	if cfg.Auth.AdminEmail != "" {
		created, err := auth.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName)
		if err != nil {
			return handlers.Services{}, err
		}
		if created {
			log.WithField("email", cfg.Auth.AdminEmail).Info("bootstrap admin created")
		}
	}

	return handlers.Services{
		Posts:        service.NewPostService(store, posts, postgres.NewCommentPostgres(db)),
		Banners:      service.NewBannerService(store, postgres.NewBannerPostgres(db)),
		Associates:   service.NewAssociateService(store, associates),
		Team:         service.NewTeamService(store, postgres.NewTeamMemberPostgres(db)),
		Committees:   service.NewCommitteeService(postgres.NewCommitteePostgres(db)),
		Videos:       service.NewVideoService(postgres.NewVideoPostgres(db)),
		Publications: service.NewPublicationService(store, publications),
		Settings:     service.NewSettingsService(store, postgres.NewSettingsPostgres(db)),
		Contact:      service.NewContactService(postgres.NewContactPostgres(db)),
		Auth:         auth,
		Search:       service.NewSearchService(posts, associates, publications),
		Dashboard:    service.NewDashboardService(postgres.NewStatsPostgres(db)),
	}, nil
}

// skipTracing keeps probes, metrics scrapes and assets out of the trace stream.
func skipTracing(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/health" || p == "/healthz" || p == "/metrics" || strings.HasPrefix(p, "/static/")
}
