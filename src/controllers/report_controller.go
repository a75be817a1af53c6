package controllers

import (
	"net/http"
	"time"

	"Backend-KiddoCare/src/services/reports"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AttendanceSummary godoc
// @Summary Attendance summary for a child over a date range
// @Description from/to are YYYY-MM-DD; to defaults to today, from to 30 days before
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} reports.ChildSummary
// @Failure 400 {object} models.ErrorResponse
// @Router /reports/children/{childId}/attendance [get]
func AttendanceSummary(c *fiber.Ctx) error {
	childID := c.Params("childId")
	if _, err := canAccessChild(c, childID); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	to := time.Now()
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return utils.HandleError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = t.AddDate(0, 0, 1) // include the whole day
	}

	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return utils.HandleError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		from = t
	}

	summary, err := reports.AttendanceSummary(childID, from, to)
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(summary)
}
