package student

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// StudentHandler handles student roster requests
type StudentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// ParseFilters builds the typed filter set from the query string, then clamps
// the dept/class selection to the caller's scope. A fixed scope always wins
// over whatever ids the client sent.
func ParseFilters(c *fiber.Ctx) listing.FilterSet {
	sc := middleware.GetScope(c)
	dept, class := sc.Clamp(
		listing.ParseID(c.Query("dept_id")),
		listing.ParseID(c.Query("class_id")),
	)

	var tags []string
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	return listing.FilterSet{
		DeptID:  dept,
		ClassID: class,
		Gender:  c.Query("gender"),
		Search:  c.Query("search"),
		Tags:    tags,
	}
}

// matchTag maps a category tag onto the student's boolean flags. "non-jain"
// is the complement of "jain", so requiring both yields an empty result.
func matchTag(s model.Student, tag string) bool {
	switch tag {
	case "jain":
		return s.IsJain
	case "non-jain":
		return !s.IsJain
	case "hostel":
		return s.IsHostel
	case "day-scholar":
		return !s.IsHostel
	case "bus":
		return s.UsesBus
	case "willing":
		return s.WillingForPlacement
	default:
		return false
	}
}

// Predicates translates a filter set into the predicate chain applied to
// student rows. Unset filters contribute nothing.
func Predicates(f listing.FilterSet) []listing.Predicate[model.Student] {
	preds := []listing.Predicate[model.Student]{
		listing.EqualsID(f.DeptID, func(s model.Student) uint { return s.DeptID }),
		listing.EqualsID(f.ClassID, func(s model.Student) uint { return s.ClassID }),
		listing.EqualsString(f.Gender, func(s model.Student) string { return s.Gender }),
		listing.Substring(f.Search,
			func(s model.Student) string { return s.Name },
			func(s model.Student) string { return s.RollNo },
			func(s model.Student) string { return s.Email },
		),
	}
	if len(f.Tags) > 0 {
		preds = append(preds, listing.AllTags(f.Tags, matchTag))
	}
	return preds
}

// ListStudents handles GET /api/v1/students
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	filters := ParseFilters(c)

	// Narrow by posting in SQL, then run the predicate chain on the rows.
	// Tag and search filters stay in memory where their semantics live.
	query := h.db.Model(&model.Student{}).Order("roll_no ASC")
	if filters.DeptID != nil {
		query = query.Where("dept_id = ?", *filters.DeptID)
	}
	if filters.ClassID != nil {
		query = query.Where("class_id = ?", *filters.ClassID)
	}

	var students []model.Student
	if err := query.Find(&students).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch students")
	}

	students = listing.Apply(students, Predicates(filters)...)

	total := int64(len(students))
	pagination := response.CalculatePagination(page, limit, total)

	start := (page - 1) * limit
	if start > len(students) {
		start = len(students)
	}
	end := start + limit
	if end > len(students) {
		end = len(students)
	}

	return response.Paginated(c, students[start:end], pagination)
}

// GetStudent handles GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	return response.Success(c, student)
}

// CreateStudentRequest represents the request body for enrolling a student
type CreateStudentRequest struct {
	Name              string  `json:"name" validate:"required,min=2,max=255"`
	RollNo            string  `json:"roll_no" validate:"required,min=3,max=30"`
	Email             string  `json:"email" validate:"omitempty,email"`
	DeptID            uint    `json:"dept_id" validate:"required,min=1"`
	ClassID           uint    `json:"class_id" validate:"required,min=1"`
	Gender            string  `json:"gender" validate:"omitempty,oneof=male female other"`
	IsJain            bool    `json:"jain"`
	IsHostel          bool    `json:"hostel"`
	UsesBus           bool    `json:"bus"`
	CGPA              float64 `json:"cgpa" validate:"omitempty,min=0,max=10"`
	TenthPercentage   float64 `json:"tenth_percentage" validate:"omitempty,min=0,max=100"`
	TwelfthPercentage float64 `json:"twelfth_percentage" validate:"omitempty,min=0,max=100"`
}

// CreateStudent handles POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if !validation.ValidateRollNo(req.RollNo) {
		return response.BadRequest(c, "Invalid roll number format")
	}

	var existing model.Student
	if err := h.db.Where("roll_no = ?", req.RollNo).First(&existing).Error; err == nil {
		return response.Conflict(c, "Student with this roll number already exists")
	}

	student := model.Student{
		Name:              validation.SanitizeString(req.Name),
		RollNo:            strings.ToUpper(req.RollNo),
		Email:             req.Email,
		DeptID:            req.DeptID,
		ClassID:           req.ClassID,
		Gender:            req.Gender,
		IsJain:            req.IsJain,
		IsHostel:          req.IsHostel,
		UsesBus:           req.UsesBus,
		CGPA:              req.CGPA,
		TenthPercentage:   req.TenthPercentage,
		TwelfthPercentage: req.TwelfthPercentage,
	}

	if err := h.db.Create(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}

	return response.Created(c, student)
}

// UpdateStudentRequest represents the request body for updating a student
type UpdateStudentRequest struct {
	Name                string   `json:"name" validate:"omitempty,min=2,max=255"`
	Email               string   `json:"email" validate:"omitempty,email"`
	DeptID              *uint    `json:"dept_id" validate:"omitempty,min=1"`
	ClassID             *uint    `json:"class_id" validate:"omitempty,min=1"`
	Gender              string   `json:"gender" validate:"omitempty,oneof=male female other"`
	IsJain              *bool    `json:"jain"`
	IsHostel            *bool    `json:"hostel"`
	UsesBus             *bool    `json:"bus"`
	CGPA                *float64 `json:"cgpa" validate:"omitempty,min=0,max=10"`
	TenthPercentage     *float64 `json:"tenth_percentage" validate:"omitempty,min=0,max=100"`
	TwelfthPercentage   *float64 `json:"twelfth_percentage" validate:"omitempty,min=0,max=100"`
	ActiveArrears       *int     `json:"active_arrears" validate:"omitempty,min=0"`
	HistoryArrears      *int     `json:"history_arrears" validate:"omitempty,min=0"`
	WillingForPlacement *bool    `json:"willing_for_placement"`
}

// UpdateStudent handles PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	if req.Name != "" {
		student.Name = validation.SanitizeString(req.Name)
	}
	if req.Email != "" {
		student.Email = req.Email
	}
	if req.DeptID != nil {
		student.DeptID = *req.DeptID
	}
	if req.ClassID != nil {
		student.ClassID = *req.ClassID
	}
	if req.Gender != "" {
		student.Gender = req.Gender
	}
	if req.IsJain != nil {
		student.IsJain = *req.IsJain
	}
	if req.IsHostel != nil {
		student.IsHostel = *req.IsHostel
	}
	if req.UsesBus != nil {
		student.UsesBus = *req.UsesBus
	}
	if req.CGPA != nil {
		student.CGPA = *req.CGPA
	}
	if req.TenthPercentage != nil {
		student.TenthPercentage = *req.TenthPercentage
	}
	if req.TwelfthPercentage != nil {
		student.TwelfthPercentage = *req.TwelfthPercentage
	}
	if req.ActiveArrears != nil {
		student.ActiveArrears = *req.ActiveArrears
	}
	if req.HistoryArrears != nil {
		student.HistoryArrears = *req.HistoryArrears
	}
	if req.WillingForPlacement != nil {
		student.WillingForPlacement = *req.WillingForPlacement
	}

	if err := h.db.Save(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to update student")
	}

	return response.Success(c, student)
}

// DeleteStudent handles DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	if err := h.db.Delete(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete student")
	}

	return response.Success(c, fiber.Map{
		"message": "Student deleted",
	})
}
