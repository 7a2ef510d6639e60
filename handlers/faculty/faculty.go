package faculty

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// FacultyHandler handles staff directory requests
type FacultyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// ListFaculty handles GET /api/v1/faculty. Students are excluded; the caller's
// scope clamps the department selection.
func (h *FacultyHandler) ListFaculty(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	sc := middleware.GetScope(c)
	dept, _ := sc.Clamp(listing.ParseID(c.Query("dept_id")), nil)

	query := h.db.Model(&model.User{}).
		Where("role <> ?", model.RoleStudent).
		Order("name ASC")

	if dept != nil {
		query = query.Where("dept_id = ?", *dept)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count faculty")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var faculty []model.User
	if err := query.Preload("AccessGrants").
		Limit(limit).
		Offset(offset).
		Find(&faculty).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	return response.Paginated(c, faculty, pagination)
}

// GetFaculty handles GET /api/v1/faculty/:id
func (h *FacultyHandler) GetFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.User
	if err := h.db.Preload("AccessGrants").
		Where("role <> ?", model.RoleStudent).
		First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Faculty member not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty member")
	}

	return response.Success(c, user)
}

// UpdateFacultyRequest represents the request body for updating a staff record
type UpdateFacultyRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=255"`
	Role    string `json:"role" validate:"omitempty,oneof=principal hod ca staff trainer"`
	DeptID  *uint  `json:"dept_id" validate:"omitempty,min=1"`
	ClassID *uint  `json:"class_id" validate:"omitempty,min=1"`
}

// UpdateFaculty handles PUT /api/v1/faculty/:id. Role or posting changes bump
// the token version so stale sessions lose the old scope.
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.Where("role <> ?", model.RoleStudent).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Faculty member not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty member")
	}

	scopeChanged := false

	if req.Name != "" {
		user.Name = validation.SanitizeString(req.Name)
	}
	if req.Role != "" && req.Role != user.Role {
		user.Role = req.Role
		scopeChanged = true
	}
	if req.DeptID != nil {
		user.DeptID = req.DeptID
		scopeChanged = true
	}
	if req.ClassID != nil {
		user.ClassID = req.ClassID
		scopeChanged = true
	}

	if scopeChanged {
		user.TokenVersion++
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update faculty member")
	}

	return response.Success(c, user)
}

// DeleteFaculty handles DELETE /api/v1/faculty/:id
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.User
	if err := h.db.Where("role <> ?", model.RoleStudent).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Faculty member not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty member")
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete faculty member")
	}

	return response.Success(c, fiber.Map{
		"message": "Faculty member deleted",
	})
}
