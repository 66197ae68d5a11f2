package api

import (
	"github.com/cyralabs/cyra/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) GetFactors(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	kind := c.Query("kind")
	var (
		records []models.FactorRecord
		err     error
	)
	if kind != "" {
		if !models.KnownFactorKind(kind) {
			return apiError(c, fiber.StatusBadRequest, "unknown factor kind")
		}
		records, err = handler.repos.FactorRecords.ListByUserAndKind(user.ID, kind)
	} else {
		records, err = handler.repos.FactorRecords.ListByUser(user.ID)
	}
	if err != nil {
		handler.logger.Error("list factor records", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load factors")
	}
	return c.JSON(records)
}

func (handler *Handler) CreateFactor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload factorPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateFactorPayload(payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	date, err := parseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	record := models.FactorRecord{
		UserID: user.ID,
		Date:   date,
		Kind:   payload.Kind,
		Name:   payload.Name,
		Value:  payload.Value,
	}
	if err := handler.repos.FactorRecords.Create(&record); err != nil {
		handler.logger.Error("create factor record", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to save factor")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) DeleteFactor(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recordID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid factor id")
	}

	deleted, err := handler.repos.FactorRecords.DeleteByUserAndID(user.ID, recordID)
	if err != nil {
		handler.logger.Error("delete factor record", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to delete factor")
	}
	if deleted == 0 {
		return apiError(c, fiber.StatusNotFound, "factor not found")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
