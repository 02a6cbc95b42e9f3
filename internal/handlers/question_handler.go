package handlers

import (
	"context"
	"log"

	"question-bank-service/internal/models"
	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

func (h *QuestionHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/questions")

	group.Post("/", h.CreateQuestion)
	group.Get("/", h.ListQuestions)
	group.Get("/category/:categoryId/count", h.CountByCategory)
	group.Get("/:id", h.GetQuestion)
	group.Put("/:id", h.UpdateQuestion)
	group.Delete("/:id", h.DeleteQuestion)
}

func (h *QuestionHandler) CreateQuestion(c fiber.Ctx) error {
	var input models.QuestionInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"error_code": "INVALID_BODY",
		})
	}

	idempotencyKey := c.Get("Idempotency-Key")

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	question, err := h.questionService.Create(ctx, input, idempotencyKey)
	if err != nil {
		return respondError(c, err, "Failed to create question")
	}

	log.Printf("Created question: %s", question.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(question)
}

func (h *QuestionHandler) GetQuestion(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	question, err := h.questionService.Get(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Question not found")
	}

	return c.Status(fiber.StatusOK).JSON(question)
}

func (h *QuestionHandler) ListQuestions(c fiber.Ctx) error {
	page, pageSize := pagination(c)

	filters := services.QuestionFilters{
		CategoryID: c.Query("category_id"),
		SourceID:   c.Query("source_id"),
		Difficulty: c.Query("difficulty"),
	}
	if filters.Difficulty != "" && !models.ValidDifficulty(filters.Difficulty) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid difficulty level",
			"error_code": "VALIDATION_ERROR",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	result, err := h.questionService.List(ctx, page, pageSize, filters)
	if err != nil {
		return respondError(c, err, "Failed to list questions")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *QuestionHandler) UpdateQuestion(c fiber.Ctx) error {
	var update models.QuestionUpdate
	if err := c.Bind().Body(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"error_code": "INVALID_BODY",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	question, err := h.questionService.Update(ctx, c.Params("id"), update)
	if err != nil {
		return respondError(c, err, "Question not found")
	}

	log.Printf("Updated question: %s", question.ID.Hex())
	return c.Status(fiber.StatusOK).JSON(question)
}

func (h *QuestionHandler) DeleteQuestion(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	deleted, err := h.questionService.Delete(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to delete question")
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":      "Question not found",
			"error_code": "NOT_FOUND",
		})
	}

	log.Printf("Deleted question: %s", c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *QuestionHandler) CountByCategory(c fiber.Ctx) error {
	categoryID := c.Params("categoryId")

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	count, err := h.questionService.CountByCategory(ctx, categoryID)
	if err != nil {
		return respondError(c, err, "Failed to count questions")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"category_id": categoryID,
		"count":       count,
	})
}
