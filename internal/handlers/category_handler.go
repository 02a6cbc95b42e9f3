package handlers

import (
	"context"
	"log"

	"question-bank-service/internal/models"
	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/categories")

	group.Post("/", h.CreateCategory)
	group.Get("/", h.ListCategories)
	group.Get("/:id", h.GetCategory)
	group.Put("/:id", h.UpdateCategory)
	group.Delete("/:id", h.DeleteCategory)
}

func (h *CategoryHandler) CreateCategory(c fiber.Ctx) error {
	var input models.CategoryInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	category, err := h.categoryService.Create(ctx, input)
	if err != nil {
		return respondError(c, err, "Failed to create category")
	}

	log.Printf("Created category: %s", category.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) GetCategory(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	category, err := h.categoryService.Get(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Category not found")
	}

	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *CategoryHandler) ListCategories(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		return respondError(c, err, "Failed to list categories")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total": len(categories),
		"items": categories,
	})
}

func (h *CategoryHandler) UpdateCategory(c fiber.Ctx) error {
	var update models.CategoryUpdate
	if err := c.Bind().Body(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	category, err := h.categoryService.Update(ctx, c.Params("id"), update)
	if err != nil {
		return respondError(c, err, "Category not found")
	}

	log.Printf("Updated category: %s", category.ID.Hex())
	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *CategoryHandler) DeleteCategory(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	deleted, err := h.categoryService.Delete(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to delete category")
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":      "Category not found",
			"error_code": "NOT_FOUND",
		})
	}

	log.Printf("Deleted category: %s", c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
