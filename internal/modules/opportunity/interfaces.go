package opportunity

import (
	"context"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/realtime"
	"pipelinecrm/internal/repository"
)

type OpportunityRepository interface {
	GetAll(ctx context.Context, f repository.OpportunityFilters) ([]domain.Opportunity, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, opp *domain.Opportunity) error
	Update(ctx context.Context, opp *domain.Opportunity) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountByStage(ctx context.Context) (map[domain.Stage]int64, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
}

type PrincipalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Principal, error)
}

// EventPublisher pushes change events to realtime subscribers. Nil-able.
type EventPublisher interface {
	Publish(event realtime.Event)
}
