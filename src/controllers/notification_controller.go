package controllers

import (
	"net/http"

	"Backend-KiddoCare/src/services/notifications"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications godoc
// @Summary Notifications for the current user, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func ListNotifications(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	limit := int64(c.QueryInt("limit", 50))

	list, err := notifications.ListForUser(userID, limit)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	unread, err := notifications.CountUnread(userID)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"data": list, "unread": unread})
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /notifications/{id}/read [post]
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)

	if err := notifications.MarkRead(c.Params("id"), userID); err != nil {
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}
