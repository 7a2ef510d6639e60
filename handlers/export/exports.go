package export

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/handlers/student"
	"github.com/campuscore/erp-api/listing"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/services"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
)

// ExportHandler renders filtered listings as downloadable documents. The rows
// it exports are exactly the rows the corresponding listing endpoint would
// return under the same filters and scope.
type ExportHandler struct {
	db         *gorm.DB
	attendance *services.AttendanceService
	export     *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(db *gorm.DB, attendance *services.AttendanceService, export *services.ExportService) *ExportHandler {
	return &ExportHandler{
		db:         db,
		attendance: attendance,
		export:     export,
	}
}

// studentColumns is the column layout for student roster exports
var studentColumns = []services.Column[model.Student]{
	{Header: "Roll No", Value: func(s model.Student) interface{} { return s.RollNo }},
	{Header: "Name", Value: func(s model.Student) interface{} { return s.Name }},
	{Header: "Department", Value: func(s model.Student) interface{} { return model.DeptLabel(s.DeptID) }},
	{Header: "Class", Value: func(s model.Student) interface{} { return model.ClassLabel(s.ClassID) }},
	{Header: "Email", Value: func(s model.Student) interface{} { return s.Email }},
	{Header: "Gender", Value: func(s model.Student) interface{} { return s.Gender }},
	{Header: "Jain", Value: func(s model.Student) interface{} { return s.IsJain }},
	{Header: "Hostel", Value: func(s model.Student) interface{} { return s.IsHostel }},
	{Header: "Bus", Value: func(s model.Student) interface{} { return s.UsesBus }},
	{Header: "CGPA", Value: func(s model.Student) interface{} { return s.CGPA }},
}

// attendanceColumns is the column layout for attendance exports
var attendanceColumns = []services.Column[model.AttendanceRow]{
	{Header: "Name", Value: func(r model.AttendanceRow) interface{} { return r.StudentName }},
	{Header: "Reg No", Value: func(r model.AttendanceRow) interface{} { return r.RollNo }},
	{Header: "Date", Value: func(r model.AttendanceRow) interface{} { return r.Date }},
	{Header: "Status", Value: func(r model.AttendanceRow) interface{} { return r.Status }},
}

// feeColumns is the column layout for fee collection exports
var feeColumns = []services.Column[model.FeeRecord]{
	{Header: "Roll No", Value: func(f model.FeeRecord) interface{} { return f.Student.RollNo }},
	{Header: "Name", Value: func(f model.FeeRecord) interface{} { return f.Student.Name }},
	{Header: "Category", Value: func(f model.FeeRecord) interface{} { return f.Category }},
	{Header: "Amount", Value: func(f model.FeeRecord) interface{} { return f.Amount }},
	{Header: "Paid", Value: func(f model.FeeRecord) interface{} { return f.PaidAmount }},
	{Header: "Due Date", Value: func(f model.FeeRecord) interface{} { return f.DueDate }},
	{Header: "Status", Value: func(f model.FeeRecord) interface{} { return f.Status }},
}

// send writes the table in the requested format with download headers
func (h *ExportHandler) send(c *fiber.Ctx, name, title string, table [][]string) error {
	format := c.Query("format", "csv")
	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "csv":
		data, err := h.export.WriteCSV(table)
		if err != nil {
			return response.InternalServerError(c, "Failed to render CSV")
		}
		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.csv"`, name, stamp))
		return c.Send(data)
	case "xlsx":
		data, err := h.export.WriteXLSX(title, table)
		if err != nil {
			return response.InternalServerError(c, "Failed to render XLSX")
		}
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.xlsx"`, name, stamp))
		return c.Send(data)
	case "pdf":
		data, err := h.export.WritePDF(title, table)
		if err != nil {
			return response.InternalServerError(c, "Failed to render PDF")
		}
		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.pdf"`, name, stamp))
		return c.Send(data)
	default:
		return response.BadRequest(c, "Format must be csv, xlsx or pdf")
	}
}

// ExportStudents handles GET /api/v1/exports/students. Accepts the same
// filters as the student listing.
func (h *ExportHandler) ExportStudents(c *fiber.Ctx) error {
	filters := student.ParseFilters(c)

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

	students = listing.Apply(students, student.Predicates(filters)...)
	table := services.BuildRows(students, studentColumns)

	return h.send(c, "students", "Student Roster", table)
}

// ExportAttendance handles GET /api/v1/exports/attendance
func (h *ExportHandler) ExportAttendance(c *fiber.Ctx) error {
	sc := middleware.GetScope(c)
	dept, class := sc.Clamp(
		listing.ParseID(c.Query("dept_id")),
		listing.ParseID(c.Query("class_id")),
	)
	from := listing.ParseDate(c.Query("from"))
	to := listing.ParseDate(c.Query("to"))

	rows, err := h.attendance.List(c.Context(), dept, class, from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch attendance")
	}

	table := services.BuildRows(rows, attendanceColumns)
	return h.send(c, "attendance", "Attendance Register", table)
}

// ExportFees handles GET /api/v1/exports/fees
func (h *ExportHandler) ExportFees(c *fiber.Ctx) error {
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

	var fees []model.FeeRecord
	if err := query.Find(&fees).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch fee records")
	}

	table := services.BuildRows(fees, feeColumns)
	return h.send(c, "fees", "Fee Collection", table)
}
