package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the admin API and the health check on app
func RegisterRoutes(app *fiber.App, importHandler *ImportHandler, healthHandler *HealthHandler) {
	app.Get("/health", healthHandler.Health)

	admin := app.Group("/api/admin")

	importGroup := admin.Group("/import")
	importGroup.Post("/url", importHandler.ImportURL)
	importGroup.Post("/list", importHandler.ImportList)
	importGroup.Post("/all", importHandler.ImportAll)
	importGroup.Get("/sources", importHandler.ListSources)

	questions := admin.Group("/questions")
	questions.Get("/stats", importHandler.SubjectStats)
	questions.Delete("/:id", importHandler.DeactivateQuestion)
}
