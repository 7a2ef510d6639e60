package model

import (
	"time"

	"gorm.io/gorm"
)

// Student represents an enrolled student and their placement profile
type Student struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"` // login account, if provisioned
	Name      string         `gorm:"not null" json:"name"`
	RollNo    string         `gorm:"uniqueIndex;not null;type:varchar(30)" json:"roll_no"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	DeptID    uint           `gorm:"not null;index" json:"dept_id"`
	ClassID   uint           `gorm:"not null;index" json:"class_id"`
	Gender    string         `gorm:"type:varchar(10)" json:"gender"`

	// Category flags used by the multi-select filters (mess/hostel/transport)
	IsJain   bool `gorm:"default:false" json:"jain"`
	IsHostel bool `gorm:"default:false" json:"hostel"`
	UsesBus  bool `gorm:"default:false" json:"bus"`

	// Placement profile
	CGPA               float64 `gorm:"default:0" json:"cgpa"`
	TenthPercentage    float64 `gorm:"default:0" json:"tenth_percentage"`
	TwelfthPercentage  float64 `gorm:"default:0" json:"twelfth_percentage"`
	ActiveArrears      int     `gorm:"default:0" json:"active_arrears"`
	HistoryArrears     int     `gorm:"default:0" json:"history_arrears"`
	WillingForPlacement bool   `gorm:"default:true" json:"willing_for_placement"`

	// Relationships
	Department   Department             `gorm:"foreignKey:DeptID;constraint:OnDelete:CASCADE" json:"department,omitempty"`
	Class        ClassGroup             `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
	Attendance   []AttendanceRecord     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Fees         []FeeRecord            `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Applications []PlacementApplication `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}
