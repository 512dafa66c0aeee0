package interaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/repository"
)

var ErrNotFound = errors.New("interaction not found")
var ErrPrincipalNotFound = errors.New("principal not found")

type Service struct {
	interactions *repository.InteractionRepository
	principals   *repository.PrincipalRepository
}

func NewService(
	interactions *repository.InteractionRepository,
	principals *repository.PrincipalRepository,
) *Service {
	return &Service{
		interactions: interactions,
		principals:   principals,
	}
}

func (s *Service) List(ctx context.Context, f repository.InteractionFilters) (*ListResponse, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	interactions, total, err := s.interactions.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Interactions: interactions, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	i, err := s.interactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, ErrNotFound
	}
	return i, nil
}

func (s *Service) Create(ctx context.Context, req CreateInteractionRequest, createdBy string) (*domain.Interaction, error) {
	principal, err := s.principals.GetByID(ctx, req.PrincipalID)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, ErrPrincipalNotFound
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	i := &domain.Interaction{
		Type:          req.Type,
		Subject:       req.Subject,
		Notes:         req.Notes,
		PrincipalID:   req.PrincipalID,
		OpportunityID: req.OpportunityID,
		OccurredAt:    occurredAt,
		CreatedBy:     createdBy,
	}
	if err := s.interactions.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateInteractionRequest) (*domain.Interaction, error) {
	i, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		i.Type = *req.Type
	}
	if req.Subject != nil {
		i.Subject = *req.Subject
	}
	if req.Notes != nil {
		i.Notes = *req.Notes
	}
	if req.OccurredAt != nil {
		i.OccurredAt = *req.OccurredAt
	}

	if err := s.interactions.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.interactions.SoftDelete(ctx, id)
}
