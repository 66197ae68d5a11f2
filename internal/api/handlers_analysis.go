package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) GetAnalysis(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	analysis, err := handler.analysis.AnalysisForUser(user.ID, handler.parseWindowQuery(c), handler.now())
	if err != nil {
		handler.logger.Error("cycle analysis", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "analysis failed")
	}
	return c.JSON(analysis)
}

func (handler *Handler) GetStage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	assessment, err := handler.analysis.StageForUser(user.ID, handler.parseWindowQuery(c), handler.now())
	if err != nil {
		handler.logger.Error("stage assessment", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "stage assessment failed")
	}
	return c.JSON(assessment)
}

func (handler *Handler) GetCorrelations(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	bundle, err := handler.analysis.CorrelationsForUser(user.ID)
	if err != nil {
		handler.logger.Error("correlations", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "correlation analysis failed")
	}
	return c.JSON(bundle)
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	bundle, err := handler.analysis.InsightsForUser(user.ID, handler.parseWindowQuery(c), handler.now())
	if err != nil {
		handler.logger.Error("insights", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "insight generation failed")
	}
	return c.JSON(bundle)
}
