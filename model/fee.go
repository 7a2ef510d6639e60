package model

import (
	"time"

	"gorm.io/gorm"
)

// Fee statuses
const (
	FeeStatusPending = "pending"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
)

// FeeRecord represents a fee demand raised against a student
type FeeRecord struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID  uint           `gorm:"not null;index" json:"student_id"`
	Category   string         `gorm:"type:varchar(50);not null" json:"category"` // tuition, hostel, bus, exam
	Amount     float64        `gorm:"not null" json:"amount"`
	PaidAmount float64        `gorm:"default:0" json:"paid_amount"`
	DueDate    time.Time      `gorm:"type:date" json:"due_date"`
	Status     string         `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

// RecalculateStatus keeps the status column consistent with the amounts.
func (f *FeeRecord) RecalculateStatus() {
	switch {
	case f.PaidAmount >= f.Amount:
		f.Status = FeeStatusPaid
	case f.PaidAmount > 0:
		f.Status = FeeStatusPartial
	default:
		f.Status = FeeStatusPending
	}
}
