package controllers

import (
	"net/http"

	"Backend-KiddoCare/src/services/messages"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

// SendMessage godoc
// @Summary Send a message to another user
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Router /messages [post]
func SendMessage(c *fiber.Ctx) error {
	var req struct {
		RecipientID string `json:"recipientId" validate:"required"`
		Content     string `json:"content" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	userID, _ := c.Locals("userId").(string)

	msg, err := messages.SendMessage(userID, req.RecipientID, req.Content)
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(msg)
}

// ListMessages godoc
// @Summary Messages for the current user, newest first
// @Description Pass ?with=<userId> to narrow to one conversation
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /messages [get]
func ListMessages(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	limit := int64(c.QueryInt("limit", 50))

	var err error
	var list interface{}
	if other := c.Query("with"); other != "" {
		list, err = messages.ListConversation(userID, other, limit)
	} else {
		list, err = messages.ListForUser(userID, limit)
	}
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"data": list})
}
