package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fruteria/internal/models"
)

// statusFor maps a service error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError logs err and writes the {"message", "error"} body with the mapped status.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	event := log.Warn()
	if status >= fiber.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", c.Path()).Int("status", status).Msg(message)

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// badRequest answers 400 for requests that never reach a service.
func badRequest(c *fiber.Ctx, message string, err error) error {
	log.Debug().Err(err).Str("path", c.Path()).Msg(message)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// paramID reads the :id route parameter as a positive integer.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fmt.Errorf("id must be a number: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return uint(id), nil
}
