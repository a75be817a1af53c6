package controllers

import (
	"net/http"
	"time"

	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/services"
	"Backend-KiddoCare/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Register godoc
// @Summary Register an account
// @Description Create a guardian or staff account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func Register(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Phone     string `json:"phone"`
		Password  string `json:"password" validate:"required,min=8"`
		Role      string `json:"role" validate:"omitempty,oneof=parent staff"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
	}

	if err := services.RegisterUser(&user, req.Password); err != nil {
		return utils.HandleError(c, http.StatusConflict, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		return utils.HandleError(c, http.StatusUnauthorized, err.Error())
	}

	accessToken, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, "Failed to generate token")
	}

	refreshToken := utils.GenerateRandomString(64)
	if err := utils.StoreRefreshToken(user.ID.Hex(), refreshToken, 7*24*time.Hour); err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, "Failed to store refresh token")
	}

	return c.JSON(fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func Refresh(c *fiber.Ctx) error {
	var req struct {
		UserID       string `json:"userId" validate:"required"`
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ok, err := utils.ValidateRefreshToken(req.UserID, req.RefreshToken)
	if err != nil || !ok {
		return utils.HandleError(c, http.StatusUnauthorized, "Invalid refresh token")
	}

	user, err := services.GetUserByID(req.UserID)
	if err != nil {
		return utils.HandleError(c, http.StatusUnauthorized, "Unknown user")
	}

	accessToken, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{"accessToken": accessToken})
}

// Logout godoc
// @Summary Log out and revoke tokens
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func Logout(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)

	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 {
		_ = utils.BlacklistToken(authHeader[7:], 24*time.Hour)
	}
	_ = utils.DeleteRefreshToken(userID)

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /auth/me [get]
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)

	user, err := services.GetUserByID(userID)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(user)
}
