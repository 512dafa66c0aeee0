package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stage is one of the seven fixed pipeline stages. The set is ordered for
// reporting, but the data model does not force transitions to follow it.
type Stage string

const (
	StageNewLead            Stage = "NEW_LEAD"
	StageInitialOutreach    Stage = "INITIAL_OUTREACH"
	StageSampleVisitOffered Stage = "SAMPLE_VISIT_OFFERED"
	StageAwaitingResponse   Stage = "AWAITING_RESPONSE"
	StageFeedbackLogged     Stage = "FEEDBACK_LOGGED"
	StageDemoScheduled      Stage = "DEMO_SCHEDULED"
	StageClosedWon          Stage = "CLOSED_WON"
)

// Stages lists all pipeline stages in funnel order.
var Stages = []Stage{
	StageNewLead,
	StageInitialOutreach,
	StageSampleVisitOffered,
	StageAwaitingResponse,
	StageFeedbackLogged,
	StageDemoScheduled,
	StageClosedWon,
}

func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// Context is the enumerated business reason an opportunity was opened.
type Context string

const (
	ContextNewBusiness Context = "NEW_BUSINESS"
	ContextExpansion   Context = "EXPANSION"
	ContextRenewal     Context = "RENEWAL"
	ContextFollowUp    Context = "FOLLOW_UP"
	ContextDemoRequest Context = "DEMO_REQUEST"
	ContextSampling    Context = "SAMPLING"
	ContextCustom      Context = "CUSTOM"
)

var contextLabels = map[Context]string{
	ContextNewBusiness: "New Business",
	ContextExpansion:   "Expansion",
	ContextRenewal:     "Renewal",
	ContextFollowUp:    "Follow-up",
	ContextDemoRequest: "Demo Request",
	ContextSampling:    "Sampling",
	ContextCustom:      "Custom",
}

// Label returns the human-readable form of the context code, or "" when the
// code is not one of the known values.
func (c Context) Label() string {
	return contextLabels[c]
}

func (c Context) Valid() bool {
	_, ok := contextLabels[c]
	return ok
}

type Opportunity struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"uniqueIndex:idx_opportunities_name,where:deleted_at IS NULL"`

	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid"`
	PrincipalID    uuid.UUID  `json:"principal_id" gorm:"type:uuid"`
	ProductID      *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid"`

	Context     Context    `json:"context"`
	Stage       Stage      `json:"stage"`
	Probability int        `json:"probability"` // percent, 0..100
	Value       float64    `json:"value"`       // estimated deal value
	CloseDate   *time.Time `json:"close_date,omitempty"`
	DealOwner   string     `json:"deal_owner,omitempty"`
	Notes       string     `json:"notes,omitempty"`

	// NameIsCustom marks a manual override: auto-naming and its uniqueness
	// guarantee do not apply to this row.
	NameIsCustom bool `json:"name_is_custom"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`

	Organization *Organization `json:"organization,omitempty"`
	Principal    *Principal    `json:"principal,omitempty"`
	Product      *Product      `json:"product,omitempty"`
}

func (o *Opportunity) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsWon reports whether the opportunity reached the won stage.
func (o *Opportunity) IsWon() bool {
	return o.Stage == StageClosedWon
}
