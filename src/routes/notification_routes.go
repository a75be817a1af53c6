package routes

import (
	"Backend-KiddoCare/src/controllers"
	"Backend-KiddoCare/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func notificationRoutes(router fiber.Router) {
	notifications := router.Group("/notifications")
	notifications.Use(middleware.AuthJWT)

	notifications.Get("/", controllers.ListNotifications)
	notifications.Post("/:id/read", controllers.MarkNotificationRead)
}
