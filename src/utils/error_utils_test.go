package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Backend-KiddoCare/src/attendance"
	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAttendanceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
	}{
		{
			"validation carries its field",
			&attendance.ValidationError{Field: "checkOutTime", Reason: "must be after the check-in time"},
			http.StatusBadRequest, "checkOutTime",
		},
		{
			"conflict",
			&attendance.ConflictError{Reason: "child already has an open session"},
			http.StatusConflict, "",
		},
		{
			"not found",
			&attendance.NotFoundError{Resource: "session", ID: "abc"},
			http.StatusNotFound, "",
		},
		{
			"unauthenticated",
			attendance.ErrUnauthenticated,
			http.StatusUnauthorized, "",
		},
		{
			"integrity",
			&attendance.IntegrityError{ChildID: "c1", Count: 2},
			http.StatusInternalServerError, "",
		},
		{
			"store unavailable",
			&attendance.StoreUnavailableError{Op: "find", Err: errors.New("connection refused")},
			http.StatusInternalServerError, "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return utils.HandleAttendanceError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantStatus, body.Status)
			assert.Equal(t, tc.wantField, body.Field)
		})
	}
}
