package handler

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"abcip/internal/http/middleware"
	"abcip/internal/model"
	"abcip/internal/service"
)

const (
	layoutPublic = "layouts/main"
	layoutAdmin  = "layouts/admin"

	toastSuccess = "success"
	toastError   = "error"
)

// baseData fills the values every layout reads.
func baseData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	site, ok := c.Locals(middleware.SiteLocalKey).(*model.SiteSettings)
	if !ok {
		def := model.DefaultSiteSettings()
		site = &def
	}
	footer, ok := c.Locals(middleware.FooterLocalKey).(*model.FooterSettings)
	if !ok {
		def := model.DefaultFooterSettings()
		footer = &def
	}
	data["Site"] = site
	data["Footer"] = footer
	data["Path"] = c.Path()
	data["Year"] = time.Now().Year()
	data["Toast"] = c.Query("toast")
	data["ToastKind"] = c.Query("kind", toastSuccess)
	return data
}

func renderPage(c *fiber.Ctx, view string, data fiber.Map) error {
	return c.Render(view, baseData(c, data), layoutPublic)
}

func renderAdmin(c *fiber.Ctx, view string, data fiber.Map) error {
	data = baseData(c, data)
	data["Admin"] = middleware.AdminFromCtx(c)
	return c.Render(view, data, layoutAdmin)
}

// redirectToast redirects after a form post carrying a toast message in the query.
func redirectToast(c *fiber.Ctx, to, kind, msg string) error {
	q := url.Values{"toast": {msg}, "kind": {kind}}
	sep := "?"
	if strings.Contains(to, "?") {
		sep = "&"
	}
	return c.Redirect(to+sep+q.Encode(), fiber.StatusSeeOther)
}

// failToast logs a failed admin write and redirects with an error toast.
// Validation failures show their detail; anything else gets a generic message.
func failToast(c *fiber.Ctx, log logrus.FieldLogger, to, action string, err error) error {
	msg := "Não foi possível " + action + "."
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		msg += " " + err.Error()
		log.WithField("request_id", middleware.RequestIDFromCtx(c)).WithError(err).Warn(action)
	case errors.Is(err, service.ErrInvalidCredentials):
		msg = "E-mail ou senha inválidos."
		log.WithField("request_id", middleware.RequestIDFromCtx(c)).Warn(action)
	case errors.Is(err, service.ErrNotFound):
		msg = "Registro não encontrado."
	default:
		log.WithField("request_id", middleware.RequestIDFromCtx(c)).WithError(err).Error(action)
	}
	return redirectToast(c, to, toastError, msg)
}

// pageError maps a service error to the status the error page should show.
func pageError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrIDRequired):
		return fiber.ErrNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.ErrBadRequest
	}
	return err
}
