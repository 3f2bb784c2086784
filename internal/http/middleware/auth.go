package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"abcip/internal/service"
)

const (
	// SessionCookie holds the admin session token.
	SessionCookie = "abcip_session"
	// AdminLocalKey stores the verified *service.Claims of the current admin.
	AdminLocalKey = "admin"
)

// TokenVerifier checks admin session tokens.
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// Session resolves the admin session from the session cookie or a Bearer
// Authorization header. It never rejects a request; RequireAdmin does that.
func Session(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			if h := c.Get(fiber.HeaderAuthorization); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
				token = strings.TrimSpace(h[7:])
			}
		}
		if token != "" {
			if claims, err := v.Verify(token); err == nil {
				c.Locals(AdminLocalKey, claims)
			}
		}
		return c.Next()
	}
}

// AdminFromCtx returns the signed-in admin, or nil.
func AdminFromCtx(c *fiber.Ctx) *service.Claims {
	claims, _ := c.Locals(AdminLocalKey).(*service.Claims)
	return claims
}

// RequireAdmin blocks anonymous requests. JSON API paths get a 401 error
// envelope; pages are redirected to loginPath with the original path in ?next=.
func RequireAdmin(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if AdminFromCtx(c) != nil {
			return c.Next()
		}
		if strings.HasPrefix(c.Path(), "/api/") {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		return c.Redirect(loginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
	}
}
