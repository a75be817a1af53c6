package controllers

import (
	"errors"
	"net/http"
	"time"

	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/services/children"
	"Backend-KiddoCare/src/utils"

	"github.com/gofiber/fiber/v2"
)

var errAccessDenied = errors.New("access denied")

const dateLayout = "2006-01-02"

// canAccessChild loads the child and checks the caller is staff or the
// child's guardian.
func canAccessChild(c *fiber.Ctx, childID string) (*models.Child, error) {
	child, err := children.GetChildByID(childID)
	if err != nil {
		return nil, err
	}

	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userId").(string)
	if role != models.RoleStaff && child.ParentID != userID {
		return nil, errAccessDenied
	}
	return child, nil
}

// childView attaches the derived age; age is never stored.
func childView(child *models.Child) fiber.Map {
	return fiber.Map{
		"child": child,
		"age":   child.Age(time.Now()),
	}
}

type childRequest struct {
	FirstName         string                    `json:"firstName" validate:"required"`
	LastName          string                    `json:"lastName" validate:"required"`
	DateOfBirth       string                    `json:"dateOfBirth" validate:"required"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	MedicalInfo       models.MedicalInfo        `json:"medicalInfo"`
}

// CreateChild godoc
// @Summary Register a child
// @Tags children
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /children [post]
func CreateChild(c *fiber.Ctx) error {
	var req childRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
	}
	if dob.After(time.Now()) {
		return utils.HandleError(c, http.StatusBadRequest, "dateOfBirth must not be in the future")
	}

	userID, _ := c.Locals("userId").(string)

	child := models.Child{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DateOfBirth:       dob,
		ParentID:          userID,
		EmergencyContacts: req.EmergencyContacts,
		MedicalInfo:       req.MedicalInfo,
	}

	if err := children.CreateChild(&child); err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(childView(&child))
}

// GetChildren godoc
// @Summary List children
// @Description Staff see every child (paginated, searchable); guardians see their own
// @Tags children
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /children [get]
func GetChildren(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userId").(string)

	if role != models.RoleStaff {
		list, err := children.GetChildrenByParent(userID)
		if err != nil {
			return utils.HandleError(c, http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"data": list})
	}

	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	list, total, err := children.GetChildrenWithFilter(params)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

// GetChild godoc
// @Summary Get one child
// @Tags children
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /children/{id} [get]
func GetChild(c *fiber.Ctx) error {
	child, err := canAccessChild(c, c.Params("id"))
	if err == errAccessDenied {
		return utils.HandleError(c, http.StatusForbidden, err.Error())
	}
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(childView(child))
}

// UpdateChild godoc
// @Summary Edit a child's record
// @Tags children
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /children/{id} [put]
func UpdateChild(c *fiber.Ctx) error {
	if _, err := canAccessChild(c, c.Params("id")); err != nil {
		if err == errAccessDenied {
			return utils.HandleError(c, http.StatusForbidden, err.Error())
		}
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	var req childRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
	}

	updated, err := children.UpdateChild(c.Params("id"), &models.Child{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DateOfBirth:       dob,
		EmergencyContacts: req.EmergencyContacts,
		MedicalInfo:       req.MedicalInfo,
	})
	if err == children.ErrChildNotFound {
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(childView(updated))
}
