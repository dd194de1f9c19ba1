package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	runs := api.Group("/runs", handler.AuthRequired)
	runs.Get("", handler.GetRuns)
	runs.Post("/samples", handler.RecordRunSample)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/overview", handler.GetStatsOverview)

	importGroup := api.Group("/import", handler.AuthRequired)
	importGroup.Post("/csv", handler.ImportRuns)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
}
