package routes

import (
	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	authRoutes(api)
	childRoutes(api)
	attendanceRoutes(api)
	messageRoutes(api)
	notificationRoutes(api)
	reportRoutes(api)

	// Liveness probe.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
