package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pipelinecrm/internal/domain"
)

type OrganizationFilters struct {
	Type     string
	Segment  string
	Search   string
	IsActive *bool
	Limit    int
	Offset   int
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// GetAll returns organizations with optional filters
func (r *OrganizationRepository) GetAll(
	ctx context.Context,
	f OrganizationFilters,
) ([]domain.Organization, int64, error) {

	var orgs []domain.Organization
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("deleted_at IS NULL")

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Segment != "" {
		q = q.Where("segment = ?", f.Segment)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	q.Count(&total)

	err := q.
		Order("name ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&orgs).Error

	return orgs, total, err
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *OrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// SoftDelete stamps deleted_at; the row drops out of every list and the
// name-uniqueness probe.
func (r *OrganizationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
