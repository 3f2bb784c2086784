package middleware

import "github.com/gofiber/fiber/v2"

// ErrorPayload is the JSON error body shared by every API response.
type ErrorPayload struct {
	RequestID string    `json:"request_id"`
	Error     ErrorBody `json:"error"`
}

// ErrorBody carries a machine-readable code and a client-safe message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func WriteError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorPayload{
		RequestID: RequestIDFromCtx(c),
		Error:     ErrorBody{Code: code, Message: message},
	})
}
