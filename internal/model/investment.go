package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentStatus represents the status of an investment.
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "Active"
	InvestmentStatusCompleted InvestmentStatus = "Completed"
	InvestmentStatusPending   InvestmentStatus = "Pending"
)

// Investment represents incoming capital. Source records the referrer or
// originator, Code is the human-readable investment identifier.
type Investment struct {
	ID          uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Code        string           `json:"code" gorm:"uniqueIndex;size:100;not null"`
	Source      string           `json:"source" gorm:"size:255;not null;index"`
	Amount      decimal.Decimal  `json:"amount" gorm:"type:decimal(20,2);not null"`
	Date        time.Time        `json:"date" gorm:"not null;index"`
	Status      InvestmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	Description string           `json:"description,omitempty" gorm:"type:text"`
	CreatedBy   uuid.UUID        `json:"created_by" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`

	// Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
