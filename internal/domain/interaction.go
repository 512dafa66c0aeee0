package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionVisit   InteractionType = "visit"
	InteractionSample  InteractionType = "sample"
	InteractionOther   InteractionType = "other"
)

// Interaction is a logged touchpoint with a principal, optionally attached to
// an opportunity.
type Interaction struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type          InteractionType `json:"type" validate:"required"`
	Subject       string          `json:"subject" validate:"required"`
	Notes         string          `json:"notes,omitempty"`
	PrincipalID   uuid.UUID       `json:"principal_id" gorm:"type:uuid"`
	OpportunityID *uuid.UUID      `json:"opportunity_id,omitempty" gorm:"type:uuid"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CreatedBy     string          `json:"created_by,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`

	Principal *Principal `json:"principal,omitempty"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
