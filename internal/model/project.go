package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectStatus represents the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "Pending"
	ProjectStatusOngoing   ProjectStatus = "Ongoing"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
)

// ProjectType classifies who the project is delivered for.
type ProjectType string

const (
	ProjectTypeClient     ProjectType = "Client"
	ProjectTypeInternal   ProjectType = "Internal"
	ProjectTypeGovernment ProjectType = "Government"
)

// Project represents a tracked engagement. Source records who brought or
// referred the project.
type Project struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string          `json:"name" gorm:"size:255;not null"`
	Description     string          `json:"description,omitempty" gorm:"type:text"`
	Source          string          `json:"source" gorm:"size:255;not null;index"`
	Type            ProjectType     `json:"type" gorm:"type:varchar(20);not null"`
	Budget          decimal.Decimal `json:"budget" gorm:"type:decimal(20,2);not null"`
	StartDate       time.Time       `json:"start_date" gorm:"not null"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	AssignedMembers []uuid.UUID     `json:"assigned_members" gorm:"serializer:json"`
	Status          ProjectStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	Progress        int             `json:"progress" gorm:"not null;default:0"` // 0..100
	CreatedBy       uuid.UUID       `json:"created_by" gorm:"type:char(36);not null;index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AssignedTo reports whether the given user is on the project's member list.
func (p *Project) AssignedTo(userID uuid.UUID) bool {
	for _, id := range p.AssignedMembers {
		if id == userID {
			return true
		}
	}
	return false
}
