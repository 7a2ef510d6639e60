package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles recognized by the role-scope resolver. Anything else falls back to a
// fully editable scope.
const (
	RolePrincipal = "principal"
	RoleHOD       = "hod"
	RoleCA        = "ca"
	RoleStaff     = "staff"
	RoleStudent   = "student"
	RoleTrainer   = "trainer"
	RoleAdmin     = "admin"
)

// User represents a registered user in the system (staff, faculty, students)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"`
	DeptID       *uint          `gorm:"index" json:"dept_id,omitempty"`
	ClassID      *uint          `gorm:"index" json:"assigned_class_id,omitempty"` // only set for CA and students
	TokenVersion int            `gorm:"default:0" json:"-"`                       // Increment to invalidate all user tokens

	// Relationships
	AccessGrants   []AccessGrant       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"access_grants,omitempty"`
	Passes         []Pass              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications  []UserNotification  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsStaffRole reports whether the role belongs to the staff side of the house
// (anything that can hold access grants or mark attendance).
func (u *User) IsStaffRole() bool {
	switch u.Role {
	case RolePrincipal, RoleHOD, RoleCA, RoleStaff, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}
