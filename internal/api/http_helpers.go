package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// parseDayParam parses a YYYY-MM-DD calendar date in the handler's location.
func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation("2006-01-02", raw, location)
}

func parseIDParam(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// parseWindowQuery maps the optional ?window= query onto an analysis window,
// falling back to the configured default.
func (handler *Handler) parseWindowQuery(c *fiber.Ctx) int {
	raw := c.Query("window")
	if raw == "" {
		return handler.windowDays
	}
	window, err := strconv.Atoi(raw)
	if err != nil || window <= 0 || window > 730 {
		return handler.windowDays
	}
	return window
}
