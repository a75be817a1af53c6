package controllers

import (
	"net/http"

	"Backend-KiddoCare/src/services/activities"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AddActivity godoc
// @Summary Log a daily activity for a child (staff only)
// @Tags activities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.DailyActivity
// @Failure 400 {object} models.ErrorResponse
// @Router /children/{childId}/activities [post]
func AddActivity(c *fiber.Ctx) error {
	var req struct {
		Type        string `json:"type" validate:"required,oneof=nap meal play learning diaper note"`
		Description string `json:"description" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	childID := c.Params("childId")
	if _, err := canAccessChild(c, childID); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	userID, _ := c.Locals("userId").(string)

	activity, err := activities.AddActivity(childID, userID, req.Type, req.Description)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(activity)
}

// ListActivities godoc
// @Summary Daily activity log for a child, newest first
// @Tags activities
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /children/{childId}/activities [get]
func ListActivities(c *fiber.Ctx) error {
	childID := c.Params("childId")
	if _, err := canAccessChild(c, childID); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	limit := int64(c.QueryInt("limit", 10))

	list, err := activities.ListActivities(childID, limit)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"data": list})
}
