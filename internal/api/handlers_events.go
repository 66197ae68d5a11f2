package api

import (
	"github.com/cyralabs/cyra/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) GetEvents(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	events, err := handler.repos.CycleEvents.ListByUser(user.ID)
	if err != nil {
		handler.logger.Error("list cycle events", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load events")
	}
	return c.JSON(events)
}

func (handler *Handler) CreateEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload eventPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateEventPayload(payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	date, err := parseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	event := models.CycleEvent{
		UserID:    user.ID,
		Date:      date,
		Type:      payload.Type,
		Flow:      payload.Flow,
		SubScores: payload.SubScores,
	}
	if err := handler.repos.CycleEvents.Create(&event); err != nil {
		handler.logger.Error("create cycle event", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to save event")
	}

	// A new menstruation start changes the profile baseline as well.
	if event.Type == models.EventMenstruation {
		if user.LastPeriodDate == nil || date.After(*user.LastPeriodDate) {
			user.LastPeriodDate = &date
			if err := handler.auth.SaveUser(user); err != nil {
				handler.logger.Warn("update last period date", zap.Error(err))
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) DeleteEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	eventID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	deleted, err := handler.repos.CycleEvents.DeleteByUserAndID(user.ID, eventID)
	if err != nil {
		handler.logger.Error("delete cycle event", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to delete event")
	}
	if deleted == 0 {
		return apiError(c, fiber.StatusNotFound, "event not found")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
