package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// DashboardKPIRow holds the aggregate numbers for the dashboard header.
type DashboardKPIRow struct {
	Total          int64   `db:"total" json:"total"`
	Active         int64   `db:"active" json:"active"`
	AvgProbability float64 `db:"avg_probability" json:"avg_probability"`
	WonThisMonth   int64   `db:"won_this_month" json:"won_this_month"`
	PipelineValue  float64 `db:"pipeline_value" json:"pipeline_value"`
}

// PrincipalActivityRow is one line of the principal activity report.
type PrincipalActivityRow struct {
	PrincipalID       string     `db:"principal_id" json:"principal_id"`
	PrincipalName     string     `db:"principal_name" json:"principal_name"`
	OrganizationName  string     `db:"organization_name" json:"organization_name"`
	TotalOpps         int64      `db:"total_opps" json:"total_opportunities"`
	ActiveOpps        int64      `db:"active_opps" json:"active_opportunities"`
	WonOpps           int64      `db:"won_opps" json:"won_opportunities"`
	InteractionCount  int64      `db:"interaction_count" json:"interaction_count"`
	LastInteractionAt *time.Time `db:"last_interaction_at" json:"last_interaction_at,omitempty"`
}

// AnalyticsRepository runs the raw aggregate SQL behind the dashboard and the
// principal activity report.
type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) DashboardKPIs(ctx context.Context, now time.Time) (*DashboardKPIRow, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	query := r.db.Rebind(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN stage <> 'CLOSED_WON' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(AVG(probability), 0) AS avg_probability,
			COALESCE(SUM(CASE WHEN stage = 'CLOSED_WON' AND updated_at >= ? THEN 1 ELSE 0 END), 0) AS won_this_month,
			COALESCE(SUM(CASE WHEN stage <> 'CLOSED_WON' THEN value * probability / 100.0 ELSE 0 END), 0) AS pipeline_value
		FROM opportunities
		WHERE deleted_at IS NULL
	`)

	var row DashboardKPIRow
	if err := r.db.GetContext(ctx, &row, query, monthStart); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AnalyticsRepository) PrincipalActivity(ctx context.Context, limit, offset int) ([]PrincipalActivityRow, error) {
	query := r.db.Rebind(`
		SELECT
			p.id AS principal_id,
			p.name AS principal_name,
			COALESCE(org.name, '') AS organization_name,
			COALESCE(o.total_opps, 0) AS total_opps,
			COALESCE(o.active_opps, 0) AS active_opps,
			COALESCE(o.won_opps, 0) AS won_opps,
			COALESCE(i.interaction_count, 0) AS interaction_count,
			i.last_interaction_at AS last_interaction_at
		FROM principals p
		LEFT JOIN organizations org ON org.id = p.organization_id
		LEFT JOIN (
			SELECT principal_id,
			       COUNT(*) AS total_opps,
			       SUM(CASE WHEN stage <> 'CLOSED_WON' THEN 1 ELSE 0 END) AS active_opps,
			       SUM(CASE WHEN stage = 'CLOSED_WON' THEN 1 ELSE 0 END) AS won_opps
			FROM opportunities
			WHERE deleted_at IS NULL
			GROUP BY principal_id
		) o ON o.principal_id = p.id
		LEFT JOIN (
			SELECT principal_id,
			       COUNT(*) AS interaction_count,
			       MAX(occurred_at) AS last_interaction_at
			FROM interactions
			WHERE deleted_at IS NULL
			GROUP BY principal_id
		) i ON i.principal_id = p.id
		WHERE p.deleted_at IS NULL
		ORDER BY p.name ASC
		LIMIT ? OFFSET ?
	`)

	var rows []PrincipalActivityRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, err
	}
	return rows, nil
}
