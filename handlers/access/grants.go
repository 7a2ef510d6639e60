package access

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// GrantHandler manages staff access grants (teaching and class-advisor)
type GrantHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewGrantHandler creates a new grant handler
func NewGrantHandler(db *gorm.DB) *GrantHandler {
	return &GrantHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateGrantRequest represents the request body for creating an access grant
type CreateGrantRequest struct {
	UserID     uint   `json:"user_id" validate:"required,min=1"`
	DeptID     uint   `json:"dept_id" validate:"required,min=1"`
	ClassID    uint   `json:"class_id" validate:"required,min=1"`
	Subject    string `json:"subject" validate:"omitempty,min=2,max=100"`
	AccessType string `json:"access_type" validate:"required,oneof=teaching ca"`
}

// ListGrants handles GET /api/v1/access-grants
func (h *GrantHandler) ListGrants(c *fiber.Ctx) error {
	query := h.db.Model(&model.AccessGrant{}).Preload("User").Order("created_at DESC")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if deptID := c.Query("dept_id"); deptID != "" {
		query = query.Where("dept_id = ?", deptID)
	}
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	var grants []model.AccessGrant
	if err := query.Find(&grants).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch access grants")
	}

	return response.Success(c, grants)
}

// CreateGrant handles POST /api/v1/access-grants. Teaching grants require a
// subject; class-advisor grants must not carry one. A class has at most one
// advisor at a time.
func (h *GrantHandler) CreateGrant(c *fiber.Ctx) error {
	var req CreateGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	switch req.AccessType {
	case model.AccessTypeTeaching:
		if req.Subject == "" {
			return response.BadRequest(c, "Teaching grants require a subject")
		}
	case model.AccessTypeCA:
		if req.Subject != "" {
			return response.BadRequest(c, "Class advisor grants must not carry a subject")
		}
	}

	var user model.User
	if err := h.db.First(&user, req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to verify user")
	}
	if !user.IsStaffRole() {
		return response.BadRequest(c, "Access grants can only be issued to staff")
	}

	if req.AccessType == model.AccessTypeCA {
		var existing model.AccessGrant
		err := h.db.Where("dept_id = ? AND class_id = ? AND access_type = ?",
			req.DeptID, req.ClassID, model.AccessTypeCA).First(&existing).Error
		if err == nil {
			return response.Conflict(c, "This class already has an advisor")
		}
	}

	grant := model.AccessGrant{
		UserID:     req.UserID,
		DeptID:     req.DeptID,
		ClassID:    req.ClassID,
		Subject:    validation.SanitizeString(req.Subject),
		AccessType: req.AccessType,
	}

	if err := h.db.Create(&grant).Error; err != nil {
		return response.InternalServerError(c, "Failed to create access grant")
	}

	return response.Created(c, grant)
}

// DeleteGrant handles DELETE /api/v1/access-grants/:id
func (h *GrantHandler) DeleteGrant(c *fiber.Ctx) error {
	id := c.Params("id")

	var grant model.AccessGrant
	if err := h.db.First(&grant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Access grant not found")
		}
		return response.InternalServerError(c, "Failed to fetch access grant")
	}

	if err := h.db.Delete(&grant).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete access grant")
	}

	return response.Success(c, fiber.Map{
		"message": "Access grant revoked",
	})
}
