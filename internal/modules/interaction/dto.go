package interaction

import (
	"time"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
)

type CreateInteractionRequest struct {
	Type          domain.InteractionType `json:"type" validate:"required"`
	Subject       string                 `json:"subject" validate:"required,max=255"`
	Notes         string                 `json:"notes,omitempty"`
	PrincipalID   uuid.UUID              `json:"principal_id" validate:"required"`
	OpportunityID *uuid.UUID             `json:"opportunity_id,omitempty"`
	OccurredAt    *time.Time             `json:"occurred_at,omitempty"`
}

type UpdateInteractionRequest struct {
	Type       *domain.InteractionType `json:"type,omitempty"`
	Subject    *string                 `json:"subject,omitempty"`
	Notes      *string                 `json:"notes,omitempty"`
	OccurredAt *time.Time              `json:"occurred_at,omitempty"`
}

type ListResponse struct {
	Interactions []domain.Interaction `json:"interactions"`
	Total        int64                `json:"total"`
}
