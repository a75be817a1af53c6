package routes

import (
	"Backend-KiddoCare/src/controllers"
	"Backend-KiddoCare/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func reportRoutes(router fiber.Router) {
	reports := router.Group("/reports")
	reports.Use(middleware.AuthJWT)

	reports.Get("/children/:childId/attendance", controllers.AttendanceSummary)
}
