package handlers

import (
	"context"
	"strings"

	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/search")

	group.Get("/text-search", h.TextSearch)
	group.Get("/advanced", h.AdvancedSearch)
	group.Get("/by-difficulty", h.ByDifficulty)
	group.Get("/statistics", h.Statistics)
}

func (h *SearchHandler) TextSearch(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Query parameter q is required",
			"error_code": "VALIDATION_ERROR",
		})
	}
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	result, err := h.searchService.TextSearch(ctx, query, page, pageSize)
	if err != nil {
		return respondError(c, err, "Search failed")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SearchHandler) AdvancedSearch(c fiber.Ctx) error {
	spec := services.SearchSpec{
		Text:       c.Query("text"),
		CategoryID: c.Query("category_id"),
		SourceID:   c.Query("source_id"),
		Difficulty: c.Query("difficulty"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	}
	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				spec.Tags = append(spec.Tags, tag)
			}
		}
	}
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	result, err := h.searchService.AdvancedSearch(ctx, spec, page, pageSize)
	if err != nil {
		return respondError(c, err, "Search failed")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SearchHandler) ByDifficulty(c fiber.Ctx) error {
	difficulty := c.Query("difficulty")
	if difficulty == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Query parameter difficulty is required",
			"error_code": "VALIDATION_ERROR",
		})
	}
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	result, err := h.searchService.ByDifficulty(ctx, difficulty, page, pageSize)
	if err != nil {
		return respondError(c, err, "Search failed")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SearchHandler) Statistics(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	stats, err := h.searchService.Statistics(ctx)
	if err != nil {
		return respondError(c, err, "Failed to get statistics")
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
