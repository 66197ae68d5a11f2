package api

import (
	"github.com/cyralabs/cyra/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) GetEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.repos.SymptomEntries.ListByUser(user.ID)
	if err != nil {
		handler.logger.Error("list symptom entries", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	return c.JSON(entries)
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload entryPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateEntryPayload(payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	date, err := parseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	entry := models.SymptomEntry{
		UserID: user.ID,
		Date:   date,
		Scores: payload.Scores,
		Flags:  payload.Flags,
		Notes:  payload.Notes,
	}
	if err := handler.repos.SymptomEntries.Create(&entry); err != nil {
		handler.logger.Error("create symptom entry", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entryID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	deleted, err := handler.repos.SymptomEntries.DeleteByUserAndID(user.ID, entryID)
	if err != nil {
		handler.logger.Error("delete symptom entry", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	if deleted == 0 {
		return apiError(c, fiber.StatusNotFound, "entry not found")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
