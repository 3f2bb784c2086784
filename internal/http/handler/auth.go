package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"abcip/internal/http/middleware"
	"abcip/internal/service"
)

// Session sync events sent by the admin front end.
const (
	eventSignedIn       = "SIGNED_IN"
	eventTokenRefreshed = "TOKEN_REFRESHED"
	eventSignedOut      = "SIGNED_OUT"
)

func setSessionCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login exchanges admin credentials for a session token and cookie.
//
//	@Summary	Admin login
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"Credentials"
//	@Success	200		{object}	loginResponse
//	@Failure	401		{object}	middleware.ErrorPayload
//	@Router		/api/auth/login [post]
func Login(auth service.AuthService, secure bool, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		sess, err := auth.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		setSessionCookie(c, sess.Token, sess.ExpiresAt, secure)
		return c.JSON(loginResponse{AccessToken: sess.Token, ExpiresIn: sess.ExpiresIn(time.Now())})
	}
}

type sessionRequest struct {
	Event       string `json:"event"`
	AccessToken string `json:"access_token"`
}

// SyncSession mirrors the client-side auth state into the session cookie.
//
//	@Summary	Sync session cookie
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		sessionRequest	true	"Auth event"
//	@Success	200		{object}	map[string]bool
//	@Failure	400		{object}	middleware.ErrorPayload
//	@Failure	401		{object}	middleware.ErrorPayload
//	@Router		/api/auth/session [post]
func SyncSession(auth service.AuthService, secure bool, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sessionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		switch req.Event {
		case eventSignedIn, eventTokenRefreshed:
			claims, err := auth.Verify(req.AccessToken)
			if err != nil {
				clearSessionCookie(c, secure)
				return writeServiceError(c, log, err)
			}
			setSessionCookie(c, req.AccessToken, claims.ExpiresAt.Time, secure)
		case eventSignedOut:
			clearSessionCookie(c, secure)
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_EVENT", "unsupported auth event")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// Logout clears the session cookie.
//
//	@Summary	Logout
//	@Tags		auth
//	@Success	204
//	@Router		/api/auth/logout [post]
func Logout(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clearSessionCookie(c, secure)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
