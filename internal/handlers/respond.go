package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"question-bank-service/internal/repository"
	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	bulkTimeout  = 60 * time.Second
)

// respondError translates service errors into client-visible codes.
// Anything unrecognized collapses to a generic internal error so storage
// details never leak to the caller.
func respondError(c fiber.Ctx, err error, fallback string) error {
	var validationError *services.ValidationError

	switch {
	case errors.Is(err, services.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid ID format",
			"error_code": "INVALID_ID",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":      fallback,
			"error_code": "NOT_FOUND",
		})
	case errors.As(err, &validationError):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      validationError.Error(),
			"error_code": "VALIDATION_ERROR",
		})
	case errors.Is(err, repository.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      "Duplicate key",
			"error_code": "DUPLICATE_KEY",
		})
	default:
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      fallback,
			"error_code": "INTERNAL_ERROR",
		})
	}
}

func queryInt(c fiber.Ctx, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func pagination(c fiber.Ctx) (int, int) {
	return queryInt(c, "page", 1), queryInt(c, "page_size", 10)
}
