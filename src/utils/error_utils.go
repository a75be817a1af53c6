// error_utils.go
package utils

import (
	"errors"
	"net/http"

	"Backend-KiddoCare/src/attendance"
	"Backend-KiddoCare/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleAttendanceError maps the attendance error taxonomy onto HTTP
// statuses. Validation errors carry their field so the client can highlight
// the right input.
func HandleAttendanceError(c *fiber.Ctx, err error) error {
	var ve *attendance.ValidationError
	if errors.As(err, &ve) {
		return c.Status(http.StatusBadRequest).JSON(models.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: ve.Error(),
			Field:   ve.Field,
		})
	}

	status := http.StatusInternalServerError
	switch {
	case attendance.IsConflict(err):
		status = http.StatusConflict
	case attendance.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, attendance.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case attendance.IsIntegrity(err):
		// Duplicate open sessions. Not resolvable by retrying; staff must
		// correct the records.
		status = http.StatusInternalServerError
	}
	return HandleError(c, status, err.Error())
}
