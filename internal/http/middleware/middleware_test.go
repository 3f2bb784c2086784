package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"abcip/internal/logger"
	"abcip/internal/model"
	"abcip/internal/service"
	svcmocks "abcip/internal/service/mocks"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFromCtx(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace an oversized request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", 200))

		resp, _ := app.Test(req)

		rid := resp.Header.Get(RequestIDHeader)
		assert.Len(t, rid, 36)
	})
}

func TestNoCache(t *testing.T) {
	app := fiber.New()
	app.Use(NoCache())
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "no-store")
	assert.Equal(t, "no-cache", resp.Header.Get(fiber.HeaderPragma))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.Equal(t, "info", logData["level"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	app.Get("/traced", func(c *fiber.Ctx) error {
		sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
		c.SetUserContext(trace.ContextWithSpanContext(c.UserContext(), sc))
		return c.SendStatus(fiber.StatusOK)
	})

	_, err = app.Test(httptest.NewRequest("GET", "/traced", nil))
	require.NoError(t, err)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", logData["trace_id"])
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/static/app.css", func(c *fiber.Ctx) error {
		return c.SendString("body{}")
	})

	for _, path := range []string{"/missing", "/boom", "/static/app.css"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var notFound, failed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &notFound))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))

	assert.Equal(t, "warning", notFound["level"])
	assert.Equal(t, float64(fiber.StatusNotFound), notFound["status"])
	assert.Equal(t, "error", failed["level"])
	assert.Equal(t, float64(fiber.StatusInternalServerError), failed["status"])
	assert.Equal(t, "boom", failed["error"])
}

type fakeVerifier struct {
	token string
}

func (f fakeVerifier) Verify(token string) (*service.Claims, error) {
	if token != f.token {
		return nil, service.ErrInvalidToken
	}
	return &service.Claims{Email: "admin@abcip.org.br", Name: "Admin"}, nil
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(Session(fakeVerifier{token: "good"}))

	admin := app.Group("/admin", RequireAdmin("/admin/login"))
	admin.Get("/posts", func(c *fiber.Ctx) error {
		return c.SendString(AdminFromCtx(c).Email)
	})
	api := app.Group("/api/admin", RequireAdmin("/admin/login"))
	api.Post("/banners", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	app := newAuthApp()

	t.Run("cookie session passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/posts", nil)
		req.Header.Set("Cookie", SessionCookie+"=good")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "admin@abcip.org.br", string(body))
	})

	t.Run("bearer token passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/admin/banners", nil)
		req.Header.Set("Authorization", "Bearer good")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("anonymous page redirects to login", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/posts?page=2", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/admin/login?next=%2Fadmin%2Fposts%3Fpage%3D2", resp.Header.Get("Location"))
	})

	t.Run("invalid token on api is 401 json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/admin/banners", nil)
		req.Header.Set("Authorization", "Bearer forged")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body ErrorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
		assert.Equal(t, "authentication required", body.Error.Message)
		assert.NotEmpty(t, body.RequestID)
		assert.Equal(t, resp.Header.Get(RequestIDHeader), body.RequestID)
	})
}

func TestSiteData(t *testing.T) {
	settings := new(svcmocks.MockSettingsService)
	site := &model.SiteSettings{SiteName: "ABCIP Test"}
	settings.On("Site", mock.Anything).Return(site, nil)
	settings.On("Footer", mock.Anything).Return(nil, errors.New("db down"))

	app := fiber.New()
	app.Use(SiteData(settings, logger.Discard()))
	app.Get("/", func(c *fiber.Ctx) error {
		s := c.Locals(SiteLocalKey).(*model.SiteSettings)
		f := c.Locals(FooterLocalKey).(*model.FooterSettings)
		return c.SendString(s.SiteName + "|" + f.CopyrightText)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ABCIP Test|"+model.DefaultFooterSettings().CopyrightText, string(body))
	settings.AssertExpectations(t)
}
