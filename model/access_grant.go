package model

import (
	"time"

	"gorm.io/gorm"
)

// Access grant types. A teaching grant is tied to a subject; a CA grant makes
// the holder the class advisor for the dept+class pair.
const (
	AccessTypeTeaching = "teaching"
	AccessTypeCA       = "ca"
)

// AccessGrant scopes a staff member to a department+class, optionally per subject
type AccessGrant struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	DeptID     uint           `gorm:"not null;index" json:"dept_id"`
	ClassID    uint           `gorm:"not null;index" json:"class_id"`
	Subject    string         `gorm:"type:varchar(100)" json:"subject,omitempty"` // required iff access_type is teaching
	AccessType string         `gorm:"type:varchar(20);not null" json:"access_type"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Department Department `gorm:"foreignKey:DeptID;constraint:OnDelete:CASCADE" json:"department,omitempty"`
	Class      ClassGroup `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
}
