package handlers

import (
	"context"
	"log"

	"question-bank-service/internal/models"
	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type SourceHandler struct {
	sourceService *services.SourceService
}

func NewSourceHandler(sourceService *services.SourceService) *SourceHandler {
	return &SourceHandler{
		sourceService: sourceService,
	}
}

func (h *SourceHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/sources")

	group.Post("/", h.CreateSource)
	group.Get("/", h.ListSources)
	group.Get("/:id", h.GetSource)
	group.Put("/:id", h.UpdateSource)
	group.Delete("/:id", h.DeleteSource)
}

func (h *SourceHandler) CreateSource(c fiber.Ctx) error {
	var input models.SourceInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	source, err := h.sourceService.Create(ctx, input)
	if err != nil {
		return respondError(c, err, "Failed to create source")
	}

	log.Printf("Created source: %s", source.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(source)
}

func (h *SourceHandler) GetSource(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	source, err := h.sourceService.Get(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Source not found")
	}

	return c.Status(fiber.StatusOK).JSON(source)
}

func (h *SourceHandler) ListSources(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	sources, err := h.sourceService.List(ctx)
	if err != nil {
		return respondError(c, err, "Failed to list sources")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total": len(sources),
		"items": sources,
	})
}

func (h *SourceHandler) UpdateSource(c fiber.Ctx) error {
	var update models.SourceUpdate
	if err := c.Bind().Body(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	source, err := h.sourceService.Update(ctx, c.Params("id"), update)
	if err != nil {
		return respondError(c, err, "Source not found")
	}

	log.Printf("Updated source: %s", source.ID.Hex())
	return c.Status(fiber.StatusOK).JSON(source)
}

func (h *SourceHandler) DeleteSource(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	deleted, err := h.sourceService.Delete(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to delete source")
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":      "Source not found",
			"error_code": "NOT_FOUND",
		})
	}

	log.Printf("Deleted source: %s", c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
