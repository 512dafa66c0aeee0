package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pipelinecrm/internal/domain"
)

type PrincipalFilters struct {
	OrganizationID uuid.UUID
	Search         string
	IsActive       *bool
	Limit          int
	Offset         int
}

type PrincipalRepository struct {
	db *gorm.DB
}

func NewPrincipalRepository(db *gorm.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

func (r *PrincipalRepository) GetAll(
	ctx context.Context,
	f PrincipalFilters,
) ([]domain.Principal, int64, error) {

	var principals []domain.Principal
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Principal{}).
		Where("deleted_at IS NULL")

	if f.OrganizationID != uuid.Nil {
		q = q.Where("organization_id = ?", f.OrganizationID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	q.Count(&total)

	err := q.
		Preload("Organization").
		Order("name ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&principals).Error

	return principals, total, err
}

func (r *PrincipalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	var p domain.Principal
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Preload("Organization").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the principals keyed by id. Missing ids are simply absent
// from the map; the caller decides whether that is an error.
func (r *PrincipalRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Principal, error) {
	var rows []domain.Principal
	err := r.db.WithContext(ctx).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]*domain.Principal, len(rows))
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

func (r *PrincipalRepository) Create(ctx context.Context, p *domain.Principal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PrincipalRepository) Update(ctx context.Context, p *domain.Principal) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PrincipalRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Principal{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
