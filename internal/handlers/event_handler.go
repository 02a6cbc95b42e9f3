package handlers

import (
	"context"

	"question-bank-service/internal/models"
	"question-bank-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func (h *EventHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/events")

	group.Get("/", h.ListEvents)
}

func (h *EventHandler) ListEvents(c fiber.Ctx) error {
	entityID := c.Query("entity_id")
	entityType := c.Query("entity_type")
	limit := queryInt(c, "limit", 100)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	events, err := h.eventService.List(ctx, entityID, entityType, limit)
	if err != nil {
		return respondError(c, err, "Failed to list events")
	}

	return c.Status(fiber.StatusOK).JSON(models.EventListResponse{
		Total:  len(events),
		Events: events,
	})
}
