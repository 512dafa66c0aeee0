package analytics

import (
	"context"
	"time"

	"pipelinecrm/internal/repository"
)

// Service exposes the dashboard aggregates and the principal activity report.
type Service struct {
	analytics *repository.AnalyticsRepository
	now       func() time.Time
}

func NewService(analytics *repository.AnalyticsRepository) *Service {
	return &Service{
		analytics: analytics,
		now:       time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*repository.DashboardKPIRow, error) {
	return s.analytics.DashboardKPIs(ctx, s.now())
}

func (s *Service) PrincipalActivity(ctx context.Context, limit, offset int) ([]repository.PrincipalActivityRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.analytics.PrincipalActivity(ctx, limit, offset)
}
