package routes

import (
	"Backend-KiddoCare/src/controllers"
	"Backend-KiddoCare/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func messageRoutes(router fiber.Router) {
	messages := router.Group("/messages")
	messages.Use(middleware.AuthJWT)

	messages.Post("/", controllers.SendMessage)
	messages.Get("/", controllers.ListMessages)
}
