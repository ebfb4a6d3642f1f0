package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense categories used by convention. Category is free text in storage.
const (
	ExpenseCategoryRent      = "Rent"
	ExpenseCategoryUtility   = "Utility"
	ExpenseCategoryEquipment = "Equipment"
	ExpenseCategorySalary    = "Salary"
	ExpenseCategoryMarketing = "Marketing"
	ExpenseCategoryTravel    = "Travel"
	ExpenseCategoryOther     = "Other"
)

// Expense represents an outgoing payment.
type Expense struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Category    string          `json:"category" gorm:"size:100;not null;index"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	CreatedBy   uuid.UUID       `json:"created_by" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
