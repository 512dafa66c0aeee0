package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal is the counterparty contact an opportunity is opened against.
// Distinct from Organization: one organization can have many principals.
type Principal struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Title          string    `json:"title,omitempty"`
	Email          string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string    `json:"phone,omitempty"`
	IsActive       bool      `json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`

	Organization *Organization `json:"organization,omitempty"`
}

func (p *Principal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
