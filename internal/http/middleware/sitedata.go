package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"abcip/internal/model"
	"abcip/internal/service"
)

const (
	SiteLocalKey   = "site"
	FooterLocalKey = "footer"
)

// SiteData loads the site and footer settings every page layout renders.
// A failed lookup is logged and the defaults are used so pages still render.
func SiteData(settings service.SettingsService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		site, err := settings.Site(ctx)
		if err != nil {
			log.WithField("request_id", RequestIDFromCtx(c)).WithError(err).Error("load site settings")
			def := model.DefaultSiteSettings()
			site = &def
		}
		footer, err := settings.Footer(ctx)
		if err != nil {
			log.WithField("request_id", RequestIDFromCtx(c)).WithError(err).Error("load footer settings")
			def := model.DefaultFooterSettings()
			footer = &def
		}

		c.Locals(SiteLocalKey, site)
		c.Locals(FooterLocalKey, footer)
		return c.Next()
	}
}
