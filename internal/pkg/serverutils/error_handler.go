// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"anantara-be/internal/dto"
	"anantara-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler maps typed service errors onto the response envelope.
// Registered as fiber's app-level ErrorHandler.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var quotaErr *dto.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(Response[*dto.QuotaExceededError]{
				Success: false,
				Code:    fiber.StatusTooManyRequests,
				Message: quotaErr.Message,
				Data:    quotaErr,
			})
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(Response[map[string]string]{
				Success: false,
				Code:    fiber.StatusBadRequest,
				Message: "Validation failed",
				Data:    validationErr.Fields,
			})
		}

		var conflictErr *dto.ConflictError
		if errors.As(err, &conflictErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, conflictErr.Message))
		}

		var notFoundErr *dto.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, notFoundErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}
