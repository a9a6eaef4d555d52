package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorEnvelope is the wire shape of every error response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Envelope builds the error body used across all handlers.
func Envelope(message string) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorBody{Message: message}}
}

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(Envelope(fe.Message))
	}

	// 2) Validation errors (400 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		details := make(map[string]string, len(ve))
		for _, fe := range ve {
			details[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorEnvelope{
			Error: ErrorBody{Message: "Invalid body", Details: details},
		})
	}

	// 3) Unknown errors (500)
	log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope("internal server error"))
}
