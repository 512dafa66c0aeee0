package opportunity

import (
	"time"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
)

type CreateOpportunityRequest struct {
	OrganizationID uuid.UUID  `json:"organization_id" binding:"required"`
	PrincipalID    uuid.UUID  `json:"principal_id" binding:"required"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`

	Context     domain.Context `json:"context"`
	Stage       domain.Stage   `json:"stage" binding:"required"`
	Probability int            `json:"probability"`
	Value       float64        `json:"value"`
	CloseDate   *time.Time     `json:"close_date,omitempty"`
	DealOwner   string         `json:"deal_owner,omitempty"`
	Notes       string         `json:"notes,omitempty"`

	// AutoName and Name are mutually exclusive: either the service derives the
	// display name or the caller supplies one.
	AutoName bool   `json:"auto_name"`
	Name     string `json:"name,omitempty"`
}

type UpdateOpportunityRequest struct {
	Name        *string        `json:"name,omitempty"`
	ProductID   *uuid.UUID     `json:"product_id,omitempty"`
	Context     *domain.Context `json:"context,omitempty"`
	Stage       *domain.Stage  `json:"stage,omitempty"`
	Probability *int           `json:"probability,omitempty"`
	Value       *float64       `json:"value,omitempty"`
	CloseDate   *time.Time     `json:"close_date,omitempty"`
	DealOwner   *string        `json:"deal_owner,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// BatchCreateRequest creates one opportunity per principal from a single form
// submission. Shared fields apply to every row.
type BatchCreateRequest struct {
	OrganizationID uuid.UUID   `json:"organization_id" binding:"required"`
	PrincipalIDs   []uuid.UUID `json:"principal_ids" binding:"required,min=1"`
	ProductID      *uuid.UUID  `json:"product_id,omitempty"`

	Context     domain.Context `json:"context"`
	Stage       domain.Stage   `json:"stage" binding:"required"`
	Probability int            `json:"probability"`
	Value       float64        `json:"value"`
	CloseDate   *time.Time     `json:"close_date,omitempty"`
	DealOwner   string         `json:"deal_owner,omitempty"`
	Notes       string         `json:"notes,omitempty"`

	// AutoName derives every name; otherwise ManualNames must line up with
	// PrincipalIDs one to one.
	AutoName    bool     `json:"auto_name"`
	ManualNames []string `json:"manual_names,omitempty"`
}

// NamePreview is the ephemeral per-principal preview row shown in the batch
// form. Error is set when this principal could not be previewed; the rest of
// the batch is unaffected.
type NamePreview struct {
	PrincipalID   uuid.UUID `json:"principal_id"`
	PrincipalName string    `json:"principal_name"`
	GeneratedName string    `json:"generated_name"`
	IsDuplicate   bool      `json:"is_duplicate"`
	Error         string    `json:"error,omitempty"`
}

type BatchFailure struct {
	PrincipalID uuid.UUID `json:"principal_id"`
	Reason      string    `json:"reason"`
}

// BatchResult reports both outcomes of a partial-failure batch. Created and
// Failed together cover every requested principal, in request order.
type BatchResult struct {
	Created []domain.Opportunity `json:"created"`
	Failed  []BatchFailure       `json:"failed"`
}

type ListResponse struct {
	Opportunities []domain.Opportunity `json:"opportunities"`
	Total         int64                `json:"total"`
	Limit         int                  `json:"limit"`
	Offset        int                  `json:"offset"`
}
