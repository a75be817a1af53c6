package controllers

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"Backend-KiddoCare/src/attendance"
	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/jobs"
	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	managerOnce sync.Once
	manager     *attendance.Manager
)

// attendanceManager lazily wires the session manager over the shared
// checkIns collection and creates the open-session index.
func attendanceManager() *attendance.Manager {
	managerOnce.Do(func() {
		store := attendance.NewMongoStore(database.CheckInCollection)
		if err := store.EnsureIndexes(context.Background()); err != nil {
			log.Println("⚠️ attendance index setup failed:", err)
		}
		manager = attendance.NewManager(store, nil)
	})
	return manager
}

type checkInRequest struct {
	ChildID           string                    `json:"childId" validate:"required"`
	DropOffInfo       models.DropOffInfo        `json:"dropOffInfo"`
	HealthStatus      models.HealthStatus       `json:"healthStatus"`
	Meals             models.Meals              `json:"meals"`
	Concerns          string                    `json:"concerns"`
	AlternativePickup *models.AlternativePickup `json:"alternativePickup"`
}

// CheckIn godoc
// @Summary Check a child in
// @Description Opens a session; fails with 409 when one is already open
// @Tags attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.AttendanceSession
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/check-in [post]
func CheckIn(c *fiber.Ctx) error {
	var req checkInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	if _, err := canAccessChild(c, req.ChildID); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	userID, _ := c.Locals("userId").(string)

	session, err := attendanceManager().CheckIn(c.Context(), userID, attendance.CheckInInput{
		ChildID:           req.ChildID,
		DropOff:           req.DropOffInfo,
		Health:            req.HealthStatus,
		Meals:             req.Meals,
		Concerns:          req.Concerns,
		AlternativePickup: req.AlternativePickup,
	})
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}

	jobs.EnqueueAttendanceEvent(session.ID.Hex(), req.ChildID, session.GuardianID, "check-in")
	return c.Status(http.StatusCreated).JSON(session)
}

type checkOutRequest struct {
	SessionID  string            `json:"sessionId" validate:"required"`
	Confirm    bool              `json:"confirm"`
	PickUpInfo models.PickUpInfo `json:"pickUpInfo"`
}

// CheckOut godoc
// @Summary Check a child out
// @Description Irreversible and signature-attested, so the body must carry confirm=true
// @Tags attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.AttendanceSession
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/check-out [post]
func CheckOut(c *fiber.Ctx) error {
	var req checkOutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}
	if !req.Confirm {
		return utils.HandleError(c, http.StatusBadRequest, "check-out must be confirmed")
	}

	mgr := attendanceManager()

	existing, err := mgr.Session(c.Context(), req.SessionID)
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}
	if _, err := canAccessChild(c, existing.ChildID.Hex()); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	userID, _ := c.Locals("userId").(string)

	session, err := mgr.CheckOut(c.Context(), userID, req.SessionID, req.PickUpInfo)
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}

	jobs.EnqueueAttendanceEvent(session.ID.Hex(), session.ChildID.Hex(), session.GuardianID, "check-out")
	return c.JSON(session)
}

// splitAccessible partitions child ids by the caller's access, recording
// denied or unknown children as bulk failures up front.
func splitAccessible(c *fiber.Ctx, childIDs []string) (allowed []string, failed []fiber.Map) {
	for _, id := range childIDs {
		if _, err := canAccessChild(c, id); err != nil {
			failed = append(failed, fiber.Map{"childId": id, "error": err.Error()})
			continue
		}
		allowed = append(allowed, id)
	}
	return allowed, failed
}

func bulkResponse(result attendance.BulkResult, preFailed []fiber.Map) fiber.Map {
	failed := preFailed
	for _, f := range result.Failed {
		failed = append(failed, fiber.Map{"childId": f.ChildID, "error": f.Err.Error()})
	}
	if failed == nil {
		failed = []fiber.Map{}
	}
	succeeded := result.Succeeded
	if succeeded == nil {
		succeeded = []string{}
	}
	return fiber.Map{"succeeded": succeeded, "failed": failed}
}

type bulkCheckInRequest struct {
	ChildIDs    []string           `json:"childIds" validate:"required,min=1"`
	DropOffInfo models.DropOffInfo `json:"dropOffInfo"`
}

// BulkCheckIn godoc
// @Summary Check several children in at once
// @Description Applies check-in per child, reporting per-child outcomes
// @Tags attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /attendance/bulk-check-in [post]
func BulkCheckIn(c *fiber.Ctx) error {
	var req bulkCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	allowed, preFailed := splitAccessible(c, req.ChildIDs)
	userID, _ := c.Locals("userId").(string)

	result, err := attendanceManager().BulkCheckIn(c.Context(), userID, allowed, req.DropOffInfo)
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}
	return c.JSON(bulkResponse(result, preFailed))
}

type bulkCheckOutRequest struct {
	ChildIDs   []string          `json:"childIds" validate:"required,min=1"`
	Confirm    bool              `json:"confirm"`
	PickUpInfo models.PickUpInfo `json:"pickUpInfo"`
}

// BulkCheckOut godoc
// @Summary Check several children out at once
// @Tags attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /attendance/bulk-check-out [post]
func BulkCheckOut(c *fiber.Ctx) error {
	var req bulkCheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}
	if !req.Confirm {
		return utils.HandleError(c, http.StatusBadRequest, "check-out must be confirmed")
	}

	allowed, preFailed := splitAccessible(c, req.ChildIDs)
	userID, _ := c.Locals("userId").(string)

	result, err := attendanceManager().BulkCheckOut(c.Context(), userID, allowed, req.PickUpInfo)
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}
	return c.JSON(bulkResponse(result, preFailed))
}

// ActiveSession godoc
// @Summary Current open session for a child
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /attendance/children/{childId}/active [get]
func ActiveSession(c *fiber.Ctx) error {
	childID := c.Params("childId")
	if _, err := canAccessChild(c, childID); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	session, err := attendanceManager().ActiveSession(c.Context(), childID)
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}
	return c.JSON(fiber.Map{
		"checkedIn": session != nil,
		"session":   session,
	})
}

// History godoc
// @Summary Attendance history for a child, newest first
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /attendance/children/{childId}/history [get]
func History(c *fiber.Ctx) error {
	childID := c.Params("childId")
	if _, err := canAccessChild(c, childID); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	limit := int64(c.QueryInt("limit", 50))

	sessions, err := attendanceManager().History(c.Context(), childID, limit)
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}
	if sessions == nil {
		sessions = []models.AttendanceSession{}
	}
	return c.JSON(fiber.Map{"data": sessions})
}

type editSessionRequest struct {
	CheckInTime       *time.Time                `json:"checkInTime"`
	CheckOutTime      *time.Time                `json:"checkOutTime"`
	DropOffInfo       *models.DropOffInfo       `json:"dropOffInfo"`
	PickUpInfo        *models.PickUpInfo        `json:"pickUpInfo"`
	HealthStatus      *models.HealthStatus      `json:"healthStatus"`
	Meals             *models.Meals             `json:"meals"`
	Concerns          *string                   `json:"concerns"`
	AlternativePickup *models.AlternativePickup `json:"alternativePickup"`
}

// EditSession godoc
// @Summary Correct a past session (staff only)
// @Description Re-validates the temporal invariants against the patched record
// @Tags attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.AttendanceSession
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /attendance/sessions/{id} [put]
func EditSession(c *fiber.Ctx) error {
	var req editSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}

	userID, _ := c.Locals("userId").(string)

	session, err := attendanceManager().EditSession(c.Context(), userID, c.Params("id"), attendance.SessionPatch{
		CheckInTime:       req.CheckInTime,
		CheckOutTime:      req.CheckOutTime,
		DropOff:           req.DropOffInfo,
		PickUp:            req.PickUpInfo,
		Health:            req.HealthStatus,
		Meals:             req.Meals,
		Concerns:          req.Concerns,
		AlternativePickup: req.AlternativePickup,
	})
	if err != nil {
		return utils.HandleAttendanceError(c, err)
	}
	return c.JSON(session)
}
