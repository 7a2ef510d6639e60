package attendance

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/services"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// AttendanceHandler handles attendance marking and reporting requests
type AttendanceHandler struct {
	service   *services.AttendanceService
	validator *validation.Validator
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// MarkRequest represents the bulk attendance payload for one class-date
type MarkRequest struct {
	DeptID  uint                   `json:"dept_id" validate:"required,min=1"`
	ClassID uint                   `json:"class_id" validate:"required,min=1"`
	Date    string                 `json:"date" validate:"required"`
	Marks   []services.MarkRequest `json:"marks" validate:"required,min=1,dive"`
}

// MarkAttendance handles POST /api/v1/attendance. The dept/class pair is
// clamped to the caller's scope before anything is written.
func (h *AttendanceHandler) MarkAttendance(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Date must be yyyy-mm-dd")
	}

	sc := middleware.GetScope(c)
	dept, class := sc.Clamp(&req.DeptID, &req.ClassID)

	if err := h.service.MarkBulk(c.Context(), *dept, *class, date, userID, req.Marks); err != nil {
		return response.InternalServerError(c, "Failed to record attendance")
	}

	return response.SuccessWithMessage(c, "Attendance recorded", fiber.Map{
		"dept_id":  *dept,
		"class_id": *class,
		"date":     req.Date,
		"count":    len(req.Marks),
	})
}

// parseWindow reads the dept/class/date filters and clamps them to scope
func parseWindow(c *fiber.Ctx) (dept, class *uint, from, to *time.Time) {
	sc := middleware.GetScope(c)
	dept, class = sc.Clamp(
		listing.ParseID(c.Query("dept_id")),
		listing.ParseID(c.Query("class_id")),
	)
	from = listing.ParseDate(c.Query("from"))
	to = listing.ParseDate(c.Query("to"))
	return dept, class, from, to
}

// ListAttendance handles GET /api/v1/attendance. The summary rides alongside
// the page so the client never computes percentages itself.
func (h *AttendanceHandler) ListAttendance(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	dept, class, from, to := parseWindow(c)

	rows, err := h.service.List(c.Context(), dept, class, from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch attendance")
	}

	summary := listing.SummarizeAttendance(rows)

	total := int64(len(rows))
	pagination := response.CalculatePagination(page, limit, total)

	start := (page - 1) * limit
	if start > len(rows) {
		start = len(rows)
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}

	return response.PaginatedWithSummary(c, rows[start:end], summary, pagination)
}

// GetSummary handles GET /api/v1/attendance/summary
func (h *AttendanceHandler) GetSummary(c *fiber.Ctx) error {
	dept, class, from, to := parseWindow(c)

	summary, err := h.service.Summary(c.Context(), dept, class, from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute summary")
	}

	return response.Success(c, summary)
}

// GetDailyReport handles GET /api/v1/attendance/report. Defaults to the
// trailing 30 days when no window is given.
func (h *AttendanceHandler) GetDailyReport(c *fiber.Ctx) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := listing.ParseDate(c.Query("from")); v != nil {
		from = *v
	}
	if v := listing.ParseDate(c.Query("to")); v != nil {
		to = *v
	}
	if to.Before(from) {
		return response.BadRequest(c, "Report window end precedes start")
	}

	counts, err := h.service.DailyRollup(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to build report")
	}

	return response.Success(c, counts)
}
