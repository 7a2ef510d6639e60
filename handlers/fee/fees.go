package fee

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/database"
	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// FeeHandler handles fee demand and payment requests
type FeeHandler struct {
	db        *gorm.DB
	reporting *database.ReportingStore
	validator *validation.Validator
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(db *gorm.DB, reporting *database.ReportingStore) *FeeHandler {
	return &FeeHandler{
		db:        db,
		reporting: reporting,
		validator: validation.NewValidator(),
	}
}

// ListFees handles GET /api/v1/fees
func (h *FeeHandler) ListFees(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	sc := middleware.GetScope(c)
	dept, class := sc.Clamp(
		listing.ParseID(c.Query("dept_id")),
		listing.ParseID(c.Query("class_id")),
	)

	query := h.db.Model(&model.FeeRecord{}).
		Joins("JOIN students ON students.id = fee_records.student_id").
		Preload("Student").
		Order("fee_records.due_date ASC")

	if dept != nil {
		query = query.Where("students.dept_id = ?", *dept)
	}
	if class != nil {
		query = query.Where("students.class_id = ?", *class)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("fee_records.status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("fee_records.category = ?", category)
	}
	if studentID := listing.ParseID(c.Query("student_id")); studentID != nil {
		query = query.Where("fee_records.student_id = ?", *studentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count fee records")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var fees []model.FeeRecord
	if err := query.Limit(limit).Offset(offset).Find(&fees).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch fee records")
	}

	return response.Paginated(c, fees, pagination)
}

// CreateFeeRequest represents the request body for raising a fee demand
type CreateFeeRequest struct {
	StudentID uint    `json:"student_id" validate:"required,min=1"`
	Category  string  `json:"category" validate:"required,oneof=tuition hostel bus exam"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	DueDate   string  `json:"due_date" validate:"required"`
}

// CreateFee handles POST /api/v1/fees
func (h *FeeHandler) CreateFee(c *fiber.Ctx) error {
	var req CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return response.BadRequest(c, "Due date must be yyyy-mm-dd")
	}

	var student model.Student
	if err := h.db.First(&student, req.StudentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to verify student")
	}

	fee := model.FeeRecord{
		StudentID: req.StudentID,
		Category:  req.Category,
		Amount:    req.Amount,
		DueDate:   dueDate,
	}
	fee.RecalculateStatus()

	if err := h.db.Create(&fee).Error; err != nil {
		return response.InternalServerError(c, "Failed to create fee record")
	}

	return response.Created(c, fee)
}

// RecordPaymentRequest represents a payment against a fee demand
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// RecordPayment handles POST /api/v1/fees/:id/payments. The status column is
// recomputed from the amounts inside the same transaction.
func (h *FeeHandler) RecordPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var fee model.FeeRecord
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&fee, id).Error; err != nil {
			return err
		}
		fee.PaidAmount += req.Amount
		fee.RecalculateStatus()
		return tx.Save(&fee).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Fee record not found")
		}
		return response.InternalServerError(c, "Failed to record payment")
	}

	return response.Success(c, fee)
}

// GetCollectionSummary handles GET /api/v1/fees/summary. The rollup runs on
// the reporting store; the caller's scope restricts the department.
func (h *FeeHandler) GetCollectionSummary(c *fiber.Ctx) error {
	if h.reporting == nil {
		return response.InternalServerError(c, "Reporting is not configured")
	}

	sc := middleware.GetScope(c)
	dept, _ := sc.Clamp(listing.ParseID(c.Query("dept_id")), nil)

	summaries, err := h.reporting.FeeCollectionByCategory(dept)
	if err != nil {
		return response.InternalServerError(c, "Failed to build collection summary")
	}

	return response.Success(c, summaries)
}
