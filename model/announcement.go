package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Announcement target types
const (
	TargetAll        = "all"
	TargetDepartment = "department"
	TargetClass      = "class"
)

// Announcement is a broadcast message targeted at the whole campus, one
// department, or one class. Delivery is fanned out into UserNotification rows.
type Announcement struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Title      string         `gorm:"not null" json:"title"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	TargetType string         `gorm:"type:varchar(20);not null;default:'all'" json:"target_type"`
	DeptID     *uint          `gorm:"index" json:"dept_id,omitempty"`
	ClassID    *uint          `gorm:"index" json:"class_id,omitempty"`
	CreatedBy  uint           `gorm:"index" json:"created_by"`

	// Relationships
	Author User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"author,omitempty"`
}

// NotificationCategory represents the category of notification
type NotificationCategory string

const (
	NotificationCategoryAnnouncement NotificationCategory = "announcement"
	NotificationCategoryPass         NotificationCategory = "pass"
	NotificationCategoryPlacement    NotificationCategory = "placement"
	NotificationCategoryGeneral      NotificationCategory = "general"
)

// UserNotification represents a delivered notification for one user
type UserNotification struct {
	ID             uint                 `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	DeletedAt      gorm.DeletedAt       `gorm:"index" json:"deleted_at,omitempty"`
	UserID         uint                 `gorm:"index;not null" json:"user_id"`
	Category       NotificationCategory `gorm:"type:varchar(30);not null" json:"category"`
	Title          string               `gorm:"type:varchar(255);not null" json:"title"`
	Message        string               `gorm:"type:text" json:"message"`
	Read           bool                 `gorm:"default:false" json:"read"`
	AnnouncementID *uint                `gorm:"index" json:"announcement_id,omitempty"`
	Metadata       datatypes.JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Announcement *Announcement `gorm:"foreignKey:AnnouncementID;constraint:OnDelete:SET NULL" json:"announcement,omitempty"`
}
