package model

import (
	"time"

	"gorm.io/gorm"
)

// Department represents an academic department (e.g., CSE, ECE)
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;uniqueIndex" json:"name"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"` // e.g., "CSE", "MECH"
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Students []Student `gorm:"foreignKey:DeptID;constraint:OnDelete:CASCADE" json:"students,omitempty"`
}

// ClassGroup is the global year-of-study lookup. Its ids are the 1-4 year
// ids carried by assigned_class_id, class filters and ClassMap; a class
// within a department is always the (dept_id, class_id) pair, never a
// per-department group row.
type ClassGroup struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Year      int            `gorm:"not null;uniqueIndex" json:"year"` // 1, 2, 3, 4
	Name      string         `gorm:"type:varchar(50)" json:"name"`     // e.g., "First Year"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Students []Student `gorm:"foreignKey:ClassID;constraint:OnDelete:SET NULL" json:"students,omitempty"`
}

func (ClassGroup) TableName() string {
	return "class_groups"
}

// DeptMap and ClassMap are the static id -> label lookups used by list
// rendering and export builders. They mirror the seeded rows so display code
// never needs a join for a label.
var DeptMap = map[uint]string{
	1: "Computer Science",
	2: "Electronics",
	3: "Mechanical",
	4: "Civil",
	5: "Information Technology",
}

var ClassMap = map[uint]string{
	1: "First Year",
	2: "Second Year",
	3: "Third Year",
	4: "Final Year",
}

// DeptLabel resolves a department id to its display name, falling back to "-".
func DeptLabel(id uint) string {
	if name, ok := DeptMap[id]; ok {
		return name
	}
	return "-"
}

// ClassLabel resolves a class id to its display name, falling back to "-".
func ClassLabel(id uint) string {
	if name, ok := ClassMap[id]; ok {
		return name
	}
	return "-"
}
