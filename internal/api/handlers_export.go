package api

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/cyralabs/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.export.BuildSummary(user.ID)
	if err != nil {
		handler.logger.Error("export summary", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "export failed")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := handler.export.BuildExportDays(user.ID)
	if err != nil {
		handler.logger.Error("export json", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "export failed")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cyra-export-`+handler.now().Format("2006-01-02")+`.json"`)
	return c.JSON(fiber.Map{
		"generated_at": handler.now().Format(time.RFC3339),
		"days":         days,
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := handler.export.BuildExportDays(user.ID)
	if err != nil {
		handler.logger.Error("export csv", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "export failed")
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "export failed")
	}
	for _, day := range days {
		if err := writer.Write(day.CSVRecord()); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "export failed")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "export failed")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cyra-export-`+handler.now().Format("2006-01-02")+`.csv"`)
	return c.Send(buffer.Bytes())
}
