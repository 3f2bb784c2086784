package middleware

import "github.com/gofiber/fiber/v2"

// NoCache marks responses as private and uncacheable. Used on the admin area.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, private")
		c.Set(fiber.HeaderPragma, "no-cache")
		return c.Next()
	}
}
