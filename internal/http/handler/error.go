package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"abcip/internal/http/middleware"
	"abcip/internal/service"
)

// writeError writes the shared JSON error envelope.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return middleware.WriteError(c, status, code, message)
}

// writeServiceError translates a service error into the JSON envelope.
// Validation messages are client-safe and returned as is; anything
// unrecognised is logged and reported as INTERNAL_ERROR.
func writeServiceError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrInvalidCounter):
		return writeError(c, fiber.StatusBadRequest, "INVALID_COUNTER", "unknown counter")
	case errors.Is(err, service.ErrInvalidDirection):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DIRECTION", "direction must be up or down")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrInvalidToken):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
	}
	log.WithField("request_id", middleware.RequestIDFromCtx(c)).WithError(err).Error("request failed")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// wantsHTML reports whether an error on this request should be answered
// with the rendered error page rather than JSON.
func wantsHTML(c *fiber.Ctx) bool {
	if c.App().Config().Views == nil {
		return false
	}
	p := c.Path()
	if strings.HasPrefix(p, "/api/") || p == "/health" || p == "/healthz" || p == "/metrics" {
		return false
	}
	return true
}

var errorTitles = map[int]string{
	fiber.StatusBadRequest:       "Requisição inválida",
	fiber.StatusNotFound:         "Página não encontrada",
	fiber.StatusMethodNotAllowed: "Método não permitido",
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Page requests get the error template when a view engine is configured.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			log.WithField("request_id", middleware.RequestIDFromCtx(c)).WithError(err).Error("unhandled error")
		}

		if wantsHTML(c) {
			title, ok := errorTitles[status]
			if !ok {
				title = "Algo deu errado"
			}
			c.Status(status)
			renderErr := c.Render("errors/error", fiber.Map{
				"Status":    status,
				"Title":     title,
				"RequestID": middleware.RequestIDFromCtx(c),
			})
			if renderErr == nil {
				return nil
			}
			log.WithError(renderErr).Error("render error page")
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
