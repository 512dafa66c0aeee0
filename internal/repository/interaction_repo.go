package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pipelinecrm/internal/domain"
)

type InteractionFilters struct {
	PrincipalID   uuid.UUID
	OpportunityID uuid.UUID
	Type          string
	Limit         int
	Offset        int
}

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) GetAll(
	ctx context.Context,
	f InteractionFilters,
) ([]domain.Interaction, int64, error) {

	var interactions []domain.Interaction
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Interaction{}).
		Where("deleted_at IS NULL")

	if f.PrincipalID != uuid.Nil {
		q = q.Where("principal_id = ?", f.PrincipalID)
	}
	if f.OpportunityID != uuid.Nil {
		q = q.Where("opportunity_id = ?", f.OpportunityID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	q.Count(&total)

	err := q.
		Preload("Principal").
		Order("occurred_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&interactions).Error

	return interactions, total, err
}

func (r *InteractionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interaction, error) {
	var i domain.Interaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Preload("Principal").
		First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InteractionRepository) Create(ctx context.Context, i *domain.Interaction) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InteractionRepository) Update(ctx context.Context, i *domain.Interaction) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InteractionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Interaction{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
