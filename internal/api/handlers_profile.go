package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type profilePayload struct {
	Age                  *int    `json:"age"`
	LastPeriodDate       *string `json:"last_period_date"`
	IsPeriodsRegular     *bool   `json:"is_periods_regular"`
	HasStoppedCompletely *bool   `json:"has_stopped_completely"`
	ReportedCycleLength  *int    `json:"reported_cycle_length"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

// UpdateProfile applies a partial update; absent fields keep their value.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload profilePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Age != nil {
		if *payload.Age < 0 || *payload.Age > 120 {
			return apiError(c, fiber.StatusBadRequest, "age out of range")
		}
		user.Age = *payload.Age
	}
	if payload.LastPeriodDate != nil {
		if *payload.LastPeriodDate == "" {
			user.LastPeriodDate = nil
		} else {
			date, err := parseDayParam(*payload.LastPeriodDate, handler.location)
			if err != nil {
				return apiError(c, fiber.StatusBadRequest, "invalid last period date, expected YYYY-MM-DD")
			}
			user.LastPeriodDate = &date
		}
	}
	if payload.IsPeriodsRegular != nil {
		user.IsPeriodsRegular = *payload.IsPeriodsRegular
	}
	if payload.HasStoppedCompletely != nil {
		user.HasStoppedCompletely = *payload.HasStoppedCompletely
	}
	if payload.ReportedCycleLength != nil {
		if *payload.ReportedCycleLength < 0 || *payload.ReportedCycleLength > 120 {
			return apiError(c, fiber.StatusBadRequest, "cycle length out of range")
		}
		user.ReportedCycleLength = *payload.ReportedCycleLength
	}

	if err := handler.auth.SaveUser(user); err != nil {
		handler.logger.Error("update profile", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(user)
}
