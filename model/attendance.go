package model

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// AttendanceRecord represents one student's attendance on one date
type AttendanceRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID uint           `gorm:"not null;index:idx_attendance_student_date,unique" json:"student_id"`
	Date      time.Time      `gorm:"not null;type:date;index:idx_attendance_student_date,unique" json:"date"`
	Status    string         `gorm:"type:varchar(10);not null" json:"status"` // Present, Absent
	DeptID    uint           `gorm:"not null;index" json:"dept_id"`
	ClassID   uint           `gorm:"not null;index" json:"class_id"`
	MarkedBy  uint           `gorm:"index" json:"marked_by"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Marker  User    `gorm:"foreignKey:MarkedBy;constraint:OnDelete:SET NULL" json:"-"`
}

// AttendanceRow is the flattened read shape used by reports and exports
// (student_name, regNo, date, status).
type AttendanceRow struct {
	StudentName string    `json:"student_name"`
	RollNo      string    `json:"regNo"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}
