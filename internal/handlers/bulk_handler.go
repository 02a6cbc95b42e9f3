package handlers

import (
	"context"
	"log"

	"question-bank-service/internal/models"
	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type BulkHandler struct {
	bulkService *services.BulkService
}

func NewBulkHandler(bulkService *services.BulkService) *BulkHandler {
	return &BulkHandler{
		bulkService: bulkService,
	}
}

func (h *BulkHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/bulk")

	group.Post("/import/json", h.ImportJSON)
	group.Post("/export/json", h.ExportJSON)
	group.Post("/update", h.Update)
	group.Post("/delete", h.Delete)
}

func (h *BulkHandler) ImportJSON(c fiber.Ctx) error {
	var items []models.QuestionInput
	if err := c.Bind().Body(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Expected JSON array",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	result, err := h.bulkService.Import(ctx, items)
	if err != nil {
		return respondError(c, err, "Bulk import failed")
	}

	log.Printf("Bulk import: %d imported, %d failed", result.Imported, result.Failed)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"total_imported": result.Imported,
		"total_failed":   result.Failed,
		"errors":         result.Errors,
	})
}

func (h *BulkHandler) ExportJSON(c fiber.Ctx) error {
	filters := services.BulkExportFilters{
		CategoryID: c.Query("category_id"),
		SourceID:   c.Query("source_id"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	questions, err := h.bulkService.Export(ctx, filters)
	if err != nil {
		return respondError(c, err, "Bulk export failed")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  questions,
		"count": len(questions),
	})
}

func (h *BulkHandler) Update(c fiber.Ctx) error {
	var items []map[string]any
	if err := c.Bind().Body(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Expected JSON array",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	result, err := h.bulkService.Update(ctx, items)
	if err != nil {
		return respondError(c, err, "Bulk update failed")
	}

	log.Printf("Bulk update: %d updated, %d failed", result.Updated, result.Failed)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total_updated": result.Updated,
		"total_failed":  result.Failed,
		"errors":        result.Errors,
	})
}

func (h *BulkHandler) Delete(c fiber.Ctx) error {
	var ids []string
	if err := c.Bind().Body(&ids); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Expected JSON array",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	result, err := h.bulkService.Delete(ctx, ids)
	if err != nil {
		return respondError(c, err, "Bulk delete failed")
	}

	log.Printf("Bulk delete: %d deleted, %d failed", result.Deleted, result.Failed)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total_deleted": result.Deleted,
		"total_failed":  result.Failed,
	})
}
