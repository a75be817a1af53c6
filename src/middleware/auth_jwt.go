package middleware

import (
	"strings"

	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	if blacklisted, _ := utils.IsTokenBlacklisted(tokenStr); blacklisted {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has been revoked"})
	}

	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)

	return c.Next()
}

// RequireStaff allows only staff accounts. Must run after AuthJWT.
func RequireStaff(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleStaff {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Staff access required"})
	}
	return c.Next()
}
