package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pipelinecrm/internal/domain"
)

type OpportunityFilters struct {
	Stage          string
	Context        string
	OrganizationID uuid.UUID
	PrincipalID    uuid.UUID
	DealOwner      string
	Search         string
	SortBy         string // name | stage | probability | close_date | created_at
	SortDesc       bool
	Limit          int
	Offset         int
}

var opportunitySortColumns = map[string]string{
	"name":        "name",
	"stage":       "stage",
	"probability": "probability",
	"close_date":  "close_date",
	"created_at":  "created_at",
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) GetAll(
	ctx context.Context,
	f OpportunityFilters,
) ([]domain.Opportunity, int64, error) {

	var opps []domain.Opportunity
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Opportunity{}).
		Where("deleted_at IS NULL")

	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}
	if f.Context != "" {
		q = q.Where("context = ?", f.Context)
	}
	if f.OrganizationID != uuid.Nil {
		q = q.Where("organization_id = ?", f.OrganizationID)
	}
	if f.PrincipalID != uuid.Nil {
		q = q.Where("principal_id = ?", f.PrincipalID)
	}
	if f.DealOwner != "" {
		q = q.Where("deal_owner = ?", f.DealOwner)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}

	q.Count(&total)

	order := "created_at DESC"
	if col, ok := opportunitySortColumns[f.SortBy]; ok {
		order = col + " ASC"
		if f.SortDesc {
			order = col + " DESC"
		}
	}

	err := q.
		Preload("Organization").
		Preload("Principal").
		Preload("Product").
		Order(order).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&opps).Error

	return opps, total, err
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Preload("Organization").
		Preload("Principal").
		Preload("Product").
		First(&opp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

// NameExists probes for a case-insensitive exact name collision among
// non-deleted opportunities. An empty result set is the success path.
func (r *OpportunityRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Opportunity{}).
		Where("LOWER(name) = LOWER(?) AND deleted_at IS NULL", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OpportunityRepository) Create(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Create(opp).Error
}

func (r *OpportunityRepository) Update(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Save(opp).Error
}

func (r *OpportunityRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Opportunity{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}

// CountByStage returns opportunity counts per pipeline stage.
func (r *OpportunityRepository) CountByStage(ctx context.Context) (map[domain.Stage]int64, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&domain.Opportunity{}).
		Select("stage, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Group("stage").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Stage]int64)
	for rows.Next() {
		var stage domain.Stage
		var count int64
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[stage] = count
	}
	return counts, rows.Err()
}
