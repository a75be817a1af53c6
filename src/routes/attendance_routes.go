package routes

import (
	"Backend-KiddoCare/src/controllers"
	"Backend-KiddoCare/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func attendanceRoutes(router fiber.Router) {
	att := router.Group("/attendance")
	att.Use(middleware.AuthJWT)

	att.Post("/check-in", controllers.CheckIn)
	att.Post("/check-out", controllers.CheckOut)
	att.Post("/bulk-check-in", controllers.BulkCheckIn)
	att.Post("/bulk-check-out", controllers.BulkCheckOut)

	att.Get("/children/:childId/active", controllers.ActiveSession)
	att.Get("/children/:childId/history", controllers.History)

	// Corrections are staff-only; guardians see history but cannot rewrite it.
	att.Put("/sessions/:id", middleware.RequireStaff, controllers.EditSession)
}
