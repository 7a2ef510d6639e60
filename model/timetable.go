package model

import (
	"time"

	"gorm.io/gorm"
)

// TimetableEntry places a subject+faculty into one period slot of a class's
// week. A slot is unique per (dept, class, day, period) since class ids are
// shared year ids across departments.
type TimetableEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DeptID    uint           `gorm:"not null;index:idx_timetable_slot,unique" json:"dept_id"`
	ClassID   uint           `gorm:"not null;index:idx_timetable_slot,unique" json:"class_id"`
	DayOfWeek int            `gorm:"not null;index:idx_timetable_slot,unique" json:"day_of_week"` // 1=Monday .. 6=Saturday
	Period    int            `gorm:"not null;index:idx_timetable_slot,unique" json:"period"`      // 1-based slot in the day
	Subject   string         `gorm:"not null;type:varchar(100)" json:"subject"`
	FacultyID uint           `gorm:"index" json:"faculty_id"`

	// Relationships
	Department Department `gorm:"foreignKey:DeptID;constraint:OnDelete:CASCADE" json:"department,omitempty"`
	Class      ClassGroup `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
	Faculty    User       `gorm:"foreignKey:FacultyID;constraint:OnDelete:SET NULL" json:"faculty,omitempty"`
}
