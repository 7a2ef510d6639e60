package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application statuses
const (
	ApplicationApplied  = "Applied"
	ApplicationSelected = "Selected"
	ApplicationRejected = "Rejected"
)

// PlacementDrive represents a recruitment event with eligibility cutoffs and
// a target audience of department/class ids.
type PlacementDrive struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Company   string         `gorm:"not null" json:"company"`
	RoleTitle string         `gorm:"type:varchar(255)" json:"role_title"`
	Package   float64        `gorm:"default:0" json:"package_lpa"`
	DriveDate time.Time      `gorm:"type:date" json:"drive_date"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`

	// Eligibility cutoffs
	MinCGPA           float64 `gorm:"default:0" json:"min_cgpa"`
	MinTenthPercent   float64 `gorm:"default:0" json:"min_tenth_percent"`
	MinTwelfthPercent float64 `gorm:"default:0" json:"min_twelfth_percent"`
	MaxActiveArrears  int     `gorm:"default:0" json:"max_active_arrears"`
	MaxHistoryArrears int     `gorm:"default:-1" json:"max_history_arrears"` // -1 means no limit

	// Target audience: JSON arrays of dept/class ids; empty array means all
	TargetDepts   datatypes.JSON `gorm:"type:jsonb" json:"target_depts"`
	TargetClasses datatypes.JSON `gorm:"type:jsonb" json:"target_classes"`

	// Relationships
	Applications []PlacementApplication `gorm:"foreignKey:DriveID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

// PlacementApplication links a student to a drive with a status
type PlacementApplication struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DriveID   uint           `gorm:"not null;index:idx_application_drive_student,unique" json:"drive_id"`
	StudentID uint           `gorm:"not null;index:idx_application_drive_student,unique" json:"student_id"`
	Status    string         `gorm:"type:varchar(20);default:'Applied'" json:"status"`

	// Relationships
	Drive   PlacementDrive `gorm:"foreignKey:DriveID;constraint:OnDelete:CASCADE" json:"drive,omitempty"`
	Student Student        `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}
