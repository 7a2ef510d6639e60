package model

import (
	"time"

	"gorm.io/gorm"
)

// Pass types
const (
	PassTypeBus      = "bus"
	PassTypeJainMess = "jain_mess"
)

// Pass is a time-bounded authorization (bus/mess) rendered as a QR code.
// Issuing a new pass supersedes older rows of the same type; revoking flips
// IsValid server-side.
type Pass struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	PassType  string         `gorm:"type:varchar(20);not null;index" json:"pass_type"`
	ValidFrom time.Time      `gorm:"not null;type:date" json:"valid_from"`
	ValidTill time.Time      `gorm:"not null;type:date;index" json:"valid_till"`
	IsValid   bool           `gorm:"default:true" json:"is_valid"`
	QRToken   string         `gorm:"uniqueIndex;not null;type:varchar(64)" json:"qr_token"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for Pass
func (Pass) TableName() string {
	return "passes"
}
