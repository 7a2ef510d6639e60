package announcement

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/services"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// AnnouncementHandler handles announcement and notification requests
type AnnouncementHandler struct {
	db        *gorm.DB
	service   *services.AnnouncementService
	validator *validation.Validator
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(db *gorm.DB, service *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		db:        db,
		service:   service,
		validator: validation.NewValidator(),
	}
}

// PublishRequest represents the request body for publishing an announcement
type PublishRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=255"`
	Message    string `json:"message" validate:"required,min=3"`
	TargetType string `json:"target_type" validate:"required,oneof=all department class"`
	DeptID     *uint  `json:"dept_id" validate:"omitempty,min=1"`
	ClassID    *uint  `json:"class_id" validate:"omitempty,min=1"`
}

// Publish handles POST /api/v1/announcements. Department announcements are
// clamped to the publisher's scope so an HOD cannot broadcast outside their
// department.
func (h *AnnouncementHandler) Publish(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sc := middleware.GetScope(c)
	if req.TargetType != model.TargetAll {
		req.DeptID, req.ClassID = sc.Clamp(req.DeptID, req.ClassID)
	}

	announcement, err := h.service.Publish(c.Context(), services.CreateAnnouncementRequest{
		Title:      validation.SanitizeString(req.Title),
		Message:    validation.SanitizeString(req.Message),
		TargetType: req.TargetType,
		DeptID:     req.DeptID,
		ClassID:    req.ClassID,
		CreatedBy:  userID,
	})
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, announcement)
}

// ListAnnouncements handles GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var announcements []model.Announcement
	if err := h.db.Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch announcements")
	}

	return response.Success(c, announcements)
}

// GetFeed handles GET /api/v1/notifications, the per-user notification feed
func (h *AnnouncementHandler) GetFeed(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	unreadOnly := c.Query("unread") == "true"

	feed, err := h.service.Feed(c.Context(), userID, unreadOnly, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch notifications")
	}

	return response.Success(c, feed)
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *AnnouncementHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.service.MarkRead(c.Context(), userID, uint(id)); err != nil {
		return response.NotFound(c, "Notification not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Notification marked read",
	})
}
