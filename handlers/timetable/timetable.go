package timetable

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// TimetableHandler handles class timetable requests
type TimetableHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewTimetableHandler creates a new timetable handler
func NewTimetableHandler(db *gorm.DB) *TimetableHandler {
	return &TimetableHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// GetTimetable handles GET /api/v1/timetable. Returns the full week for one
// class, grouped by day.
func (h *TimetableHandler) GetTimetable(c *fiber.Ctx) error {
	sc := middleware.GetScope(c)
	dept, class := sc.Clamp(
		listing.ParseID(c.Query("dept_id")),
		listing.ParseID(c.Query("class_id")),
	)

	if dept == nil || class == nil {
		return response.BadRequest(c, "dept_id and class_id are required")
	}

	var entries []model.TimetableEntry
	if err := h.db.Preload("Faculty").
		Where("dept_id = ? AND class_id = ?", *dept, *class).
		Order("day_of_week ASC, period ASC").
		Find(&entries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch timetable")
	}

	week := make(map[int][]model.TimetableEntry)
	for _, e := range entries {
		week[e.DayOfWeek] = append(week[e.DayOfWeek], e)
	}

	return response.Success(c, fiber.Map{
		"dept_id":  *dept,
		"class_id": *class,
		"week":     week,
	})
}

// UpsertEntryRequest represents one timetable slot assignment
type UpsertEntryRequest struct {
	DeptID    uint   `json:"dept_id" validate:"required,min=1"`
	ClassID   uint   `json:"class_id" validate:"required,min=1"`
	DayOfWeek int    `json:"day_of_week" validate:"required,min=1,max=6"`
	Period    int    `json:"period" validate:"required,min=1,max=8"`
	Subject   string `json:"subject" validate:"required,min=2,max=100"`
	FacultyID uint   `json:"faculty_id" validate:"required,min=1"`
}

// UpsertEntry handles PUT /api/v1/timetable. One dept+class+day+period slot
// holds exactly one subject; writing to an occupied slot replaces it.
func (h *TimetableHandler) UpsertEntry(c *fiber.Ctx) error {
	var req UpsertEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sc := middleware.GetScope(c)
	dept, class := sc.Clamp(&req.DeptID, &req.ClassID)

	var faculty model.User
	if err := h.db.First(&faculty, req.FacultyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Faculty member not found")
		}
		return response.InternalServerError(c, "Failed to verify faculty member")
	}
	if !faculty.IsStaffRole() {
		return response.BadRequest(c, "Timetable slots can only be assigned to staff")
	}

	var entry model.TimetableEntry
	err := h.db.Where("dept_id = ? AND class_id = ? AND day_of_week = ? AND period = ?",
		*dept, *class, req.DayOfWeek, req.Period).First(&entry).Error

	switch {
	case err == nil:
		entry.Subject = validation.SanitizeString(req.Subject)
		entry.FacultyID = req.FacultyID
		if err := h.db.Save(&entry).Error; err != nil {
			return response.InternalServerError(c, "Failed to update timetable slot")
		}
		return response.Success(c, entry)
	case err == gorm.ErrRecordNotFound:
		entry = model.TimetableEntry{
			DeptID:    *dept,
			ClassID:   *class,
			DayOfWeek: req.DayOfWeek,
			Period:    req.Period,
			Subject:   validation.SanitizeString(req.Subject),
			FacultyID: req.FacultyID,
		}
		if err := h.db.Create(&entry).Error; err != nil {
			return response.InternalServerError(c, "Failed to create timetable slot")
		}
		return response.Created(c, entry)
	default:
		return response.InternalServerError(c, "Failed to fetch timetable slot")
	}
}

// DeleteEntry handles DELETE /api/v1/timetable/:id
func (h *TimetableHandler) DeleteEntry(c *fiber.Ctx) error {
	id := c.Params("id")

	var entry model.TimetableEntry
	if err := h.db.First(&entry, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Timetable slot not found")
		}
		return response.InternalServerError(c, "Failed to fetch timetable slot")
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete timetable slot")
	}

	return response.Success(c, fiber.Map{
		"message": "Timetable slot removed",
	})
}

// GetFacultySchedule handles GET /api/v1/timetable/faculty/:id, the slots a
// staff member teaches across classes.
func (h *TimetableHandler) GetFacultySchedule(c *fiber.Ctx) error {
	id := c.Params("id")

	var entries []model.TimetableEntry
	if err := h.db.Where("faculty_id = ?", id).
		Order("day_of_week ASC, period ASC").
		Find(&entries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch schedule")
	}

	return response.Success(c, entries)
}
