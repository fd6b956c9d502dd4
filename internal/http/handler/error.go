package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"paperhub/internal/http/middleware"
	"paperhub/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps a service-layer error onto the error envelope.
// Unknown errors collapse to a generic 500 so internals never leak.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrAllFieldsRequired):
		return writeError(c, fiber.StatusBadRequest, "FIELDS_REQUIRED", "required fields are missing")
	case errors.Is(err, service.ErrInvalidRole):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ROLE", "role must be student or mentor")
	case errors.Is(err, service.ErrUnauthenticated):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "user not authenticated")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "paper not found")
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, fiber.StatusConflict, "USER_EXISTS", "user already exists")
	case errors.Is(err, service.ErrMentorNotFound):
		return writeError(c, fiber.StatusUnprocessableEntity, "MENTOR_NOT_FOUND", "assigned mentor not found")
	case errors.Is(err, service.ErrSelfAssignment):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_MENTOR", "paper cannot be assigned to its uploader")
	case errors.Is(err, service.ErrStorageWrite):
		return writeError(c, fiber.StatusBadGateway, "STORAGE_WRITE_ERROR", "failed to store uploaded file")
	case errors.Is(err, service.ErrStorageRead):
		return writeError(c, fiber.StatusBadGateway, "STORAGE_READ_ERROR", "failed to read stored file")
	case errors.Is(err, service.ErrRecordWrite):
		return writeError(c, fiber.StatusInternalServerError, "RECORD_WRITE_ERROR", "failed to save paper details")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
