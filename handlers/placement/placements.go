package placement

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/database"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/services"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// PlacementHandler handles placement drive and application requests
type PlacementHandler struct {
	db        *gorm.DB
	service   *services.PlacementService
	reporting *database.ReportingStore
	validator *validation.Validator
}

// NewPlacementHandler creates a new placement handler
func NewPlacementHandler(db *gorm.DB, service *services.PlacementService, reporting *database.ReportingStore) *PlacementHandler {
	return &PlacementHandler{
		db:        db,
		service:   service,
		reporting: reporting,
		validator: validation.NewValidator(),
	}
}

// CreateDriveRequest represents the request body for creating a drive
type CreateDriveRequest struct {
	Company           string  `json:"company" validate:"required,min=2,max=255"`
	RoleTitle         string  `json:"role_title" validate:"omitempty,max=255"`
	Package           float64 `json:"package_lpa" validate:"omitempty,min=0"`
	DriveDate         string  `json:"drive_date" validate:"required"`
	MinCGPA           float64 `json:"min_cgpa" validate:"omitempty,min=0,max=10"`
	MinTenthPercent   float64 `json:"min_tenth_percent" validate:"omitempty,min=0,max=100"`
	MinTwelfthPercent float64 `json:"min_twelfth_percent" validate:"omitempty,min=0,max=100"`
	MaxActiveArrears  int     `json:"max_active_arrears" validate:"omitempty,min=0"`
	MaxHistoryArrears int     `json:"max_history_arrears" validate:"omitempty,min=-1"`
	TargetDepts       []uint  `json:"target_depts"`
	TargetClasses     []uint  `json:"target_classes"`
}

func encodeIDList(ids []uint) datatypes.JSON {
	if ids == nil {
		ids = []uint{}
	}
	raw, _ := json.Marshal(ids)
	return datatypes.JSON(raw)
}

// ListDrives handles GET /api/v1/placements/drives
func (h *PlacementHandler) ListDrives(c *fiber.Ctx) error {
	query := h.db.Model(&model.PlacementDrive{}).Order("drive_date DESC")

	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if company := c.Query("company"); company != "" {
		query = query.Where("company ILIKE ?", "%"+company+"%")
	}

	var drives []model.PlacementDrive
	if err := query.Find(&drives).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch drives")
	}

	return response.Success(c, drives)
}

// GetDrive handles GET /api/v1/placements/drives/:id
func (h *PlacementHandler) GetDrive(c *fiber.Ctx) error {
	id := c.Params("id")

	var drive model.PlacementDrive
	if err := h.db.Preload("Applications").First(&drive, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Drive not found")
		}
		return response.InternalServerError(c, "Failed to fetch drive")
	}

	return response.Success(c, drive)
}

// CreateDrive handles POST /api/v1/placements/drives
func (h *PlacementHandler) CreateDrive(c *fiber.Ctx) error {
	var req CreateDriveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	driveDate, err := time.Parse("2006-01-02", req.DriveDate)
	if err != nil {
		return response.BadRequest(c, "drive_date must be yyyy-mm-dd")
	}

	drive := model.PlacementDrive{
		Company:           validation.SanitizeString(req.Company),
		RoleTitle:         validation.SanitizeString(req.RoleTitle),
		Package:           req.Package,
		DriveDate:         driveDate,
		IsActive:          true,
		MinCGPA:           req.MinCGPA,
		MinTenthPercent:   req.MinTenthPercent,
		MinTwelfthPercent: req.MinTwelfthPercent,
		MaxActiveArrears:  req.MaxActiveArrears,
		MaxHistoryArrears: req.MaxHistoryArrears,
		TargetDepts:       encodeIDList(req.TargetDepts),
		TargetClasses:     encodeIDList(req.TargetClasses),
	}

	if err := h.db.Create(&drive).Error; err != nil {
		return response.InternalServerError(c, "Failed to create drive")
	}

	return response.Created(c, drive)
}

// CloseDrive handles POST /api/v1/placements/drives/:id/close
func (h *PlacementHandler) CloseDrive(c *fiber.Ctx) error {
	id := c.Params("id")

	result := h.db.Model(&model.PlacementDrive{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to close drive")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Drive not found or already closed")
	}

	return response.Success(c, fiber.Map{
		"message": "Drive closed",
	})
}

// GetEligibleStudents handles GET /api/v1/placements/drives/:id/eligible
func (h *PlacementHandler) GetEligibleStudents(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid drive id")
	}

	students, err := h.service.EligibleStudents(c.Context(), uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Drive not found")
		}
		return response.InternalServerError(c, "Failed to evaluate eligibility")
	}

	return response.Success(c, fiber.Map{
		"count":    len(students),
		"students": students,
	})
}

// CheckEligibility handles GET /api/v1/placements/drives/:id/eligibility/:studentId
func (h *PlacementHandler) CheckEligibility(c *fiber.Ctx) error {
	var drive model.PlacementDrive
	if err := h.db.First(&drive, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Drive not found")
		}
		return response.InternalServerError(c, "Failed to fetch drive")
	}

	var student model.Student
	if err := h.db.First(&student, c.Params("studentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	return response.Success(c, services.Evaluate(&drive, &student))
}

// ApplyRequest represents a student applying to a drive
type ApplyRequest struct {
	StudentID uint `json:"student_id" validate:"required,min=1"`
}

// Apply handles POST /api/v1/placements/drives/:id/apply
func (h *PlacementHandler) Apply(c *fiber.Ctx) error {
	driveID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid drive id")
	}

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	application, err := h.service.Apply(c.Context(), uint(driveID), req.StudentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Drive or student not found")
		}
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, application)
}

// UpdateApplicationRequest moves an application through the status enum
type UpdateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=Applied Selected Rejected"`
}

// UpdateApplication handles PUT /api/v1/placements/applications/:id
func (h *PlacementHandler) UpdateApplication(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application id")
	}

	var req UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.service.UpdateStatus(c.Context(), uint(id), req.Status); err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Application not found")
		}
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, fiber.Map{
		"message": "Application updated",
	})
}

// GetFunnel handles GET /api/v1/placements/funnel
func (h *PlacementHandler) GetFunnel(c *fiber.Ctx) error {
	if h.reporting == nil {
		return response.InternalServerError(c, "Reporting is not configured")
	}

	counts, err := h.reporting.PlacementFunnel()
	if err != nil {
		return response.InternalServerError(c, "Failed to build placement funnel")
	}

	return response.Success(c, counts)
}
