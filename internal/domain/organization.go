package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationType string

const (
	OrgTypeCustomer    OrganizationType = "customer"
	OrgTypeDistributor OrganizationType = "distributor"
	OrgTypePrincipal   OrganizationType = "principal"
	OrgTypeProspect    OrganizationType = "prospect"
)

type Organization struct {
	ID       uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string           `json:"name" validate:"required"`
	Type     OrganizationType `json:"type"`
	Segment  string           `json:"segment,omitempty"`
	City     string           `json:"city,omitempty"`
	IsActive bool             `json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`

	Principals []Principal `json:"principals,omitempty"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
