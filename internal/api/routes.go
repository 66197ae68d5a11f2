package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	events := api.Group("/events", handler.AuthRequired)
	events.Get("", handler.GetEvents)
	events.Post("", handler.CreateEvent)
	events.Delete("/:id", handler.DeleteEvent)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Get("", handler.GetEntries)
	entries.Post("", handler.CreateEntry)
	entries.Delete("/:id", handler.DeleteEntry)

	factors := api.Group("/factors", handler.AuthRequired)
	factors.Get("", handler.GetFactors)
	factors.Post("", handler.CreateFactor)
	factors.Delete("/:id", handler.DeleteFactor)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)

	analysis := api.Group("/analysis", handler.AuthRequired)
	analysis.Get("", handler.GetAnalysis)
	analysis.Get("/stage", handler.GetStage)
	analysis.Get("/correlations", handler.GetCorrelations)
	analysis.Get("/insights", handler.GetInsights)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}
