package routes

import (
	"Backend-KiddoCare/src/controllers"
	"Backend-KiddoCare/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func childRoutes(router fiber.Router) {
	children := router.Group("/children")
	children.Use(middleware.AuthJWT)

	children.Post("/", controllers.CreateChild)
	children.Get("/", controllers.GetChildren)
	children.Get("/:id", controllers.GetChild)
	children.Put("/:id", controllers.UpdateChild)

	// Daily activity log lives under the child.
	children.Post("/:childId/activities", middleware.RequireStaff, controllers.AddActivity)
	children.Get("/:childId/activities", controllers.ListActivities)
}
