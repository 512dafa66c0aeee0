package opportunity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/realtime"
	"pipelinecrm/internal/repository"
)

// MaxBatchSize is the soft cap on principals per batch submission.
const MaxBatchSize = 50

type Service struct {
	opps       OpportunityRepository
	orgs       OrganizationRepository
	principals PrincipalRepository
	events     EventPublisher
	now        func() time.Time
}

func NewService(
	opps OpportunityRepository,
	orgs OrganizationRepository,
	principals PrincipalRepository,
	events EventPublisher,
) *Service {
	return &Service{
		opps:       opps,
		orgs:       orgs,
		principals: principals,
		events:     events,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, f repository.OpportunityFilters) (*ListResponse, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	opps, total, err := s.opps.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResponse{
		Opportunities: opps,
		Total:         total,
		Limit:         f.Limit,
		Offset:        f.Offset,
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	opp, err := s.opps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, ErrNotFound
	}
	return opp, nil
}

func (s *Service) StageSummary(ctx context.Context) (map[domain.Stage]int64, error) {
	counts, err := s.opps.CountByStage(ctx)
	if err != nil {
		return nil, err
	}
	// Report every stage, including empty ones, in funnel order on the client.
	for _, st := range domain.Stages {
		if _, ok := counts[st]; !ok {
			counts[st] = 0
		}
	}
	return counts, nil
}

// Create persists a single opportunity, either auto-named or with a manual
// override. Auto-naming refuses duplicates; a manual name skips the probe and
// is marked custom.
func (s *Service) Create(ctx context.Context, req CreateOpportunityRequest) (*domain.Opportunity, error) {
	if verr := s.validateShared(req.Stage, req.Probability, req.CloseDate); verr != nil {
		return nil, verr
	}
	if req.AutoName && req.Name != "" {
		return nil, newValidationError("name", "must be empty when auto_name is set")
	}
	if !req.AutoName && strings.TrimSpace(req.Name) == "" {
		return nil, newValidationError("name", "required unless auto_name is set")
	}

	org, err := s.orgs.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}

	principal, err := s.principals.GetByID(ctx, req.PrincipalID)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, newValidationError("principal_id", "unknown principal")
	}

	name := strings.TrimSpace(req.Name)
	if req.AutoName {
		name, err = GenerateName(org.Name, principal.Name, req.Context, s.now())
		if err != nil {
			return nil, err
		}
		exists, err := s.opps.NameExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	opp := &domain.Opportunity{
		Name:           name,
		OrganizationID: req.OrganizationID,
		PrincipalID:    req.PrincipalID,
		ProductID:      req.ProductID,
		Context:        req.Context,
		Stage:          req.Stage,
		Probability:    req.Probability,
		Value:          req.Value,
		CloseDate:      req.CloseDate,
		DealOwner:      req.DealOwner,
		Notes:          req.Notes,
		NameIsCustom:   !req.AutoName,
	}

	if err := s.opps.Create(ctx, opp); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	s.publish("opportunity.created", opp)
	return opp, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateOpportunityRequest) (*domain.Opportunity, error) {
	opp, err := s.opps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, newValidationError("name", "must not be empty")
		}
		if !strings.EqualFold(name, opp.Name) {
			opp.Name = name
			opp.NameIsCustom = true
		}
	}
	if req.Context != nil {
		if !req.Context.Valid() {
			return nil, newValidationError("context", "unknown context code")
		}
		opp.Context = *req.Context
	}
	if req.Stage != nil {
		if !req.Stage.Valid() {
			return nil, newValidationError("stage", "unknown stage")
		}
		opp.Stage = *req.Stage
	}
	if req.Probability != nil {
		if *req.Probability < 0 || *req.Probability > 100 {
			return nil, newValidationError("probability", "must be between 0 and 100")
		}
		opp.Probability = *req.Probability
	}
	if req.Value != nil {
		opp.Value = *req.Value
	}
	if req.ProductID != nil {
		opp.ProductID = req.ProductID
	}
	if req.CloseDate != nil {
		opp.CloseDate = req.CloseDate
	}
	if req.DealOwner != nil {
		opp.DealOwner = *req.DealOwner
	}
	if req.Notes != nil {
		opp.Notes = *req.Notes
	}

	if err := s.opps.Update(ctx, opp); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	s.publish("opportunity.updated", opp)
	return opp, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	opp, err := s.opps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if opp == nil {
		return ErrNotFound
	}

	if err := s.opps.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.publish("opportunity.deleted", opp)
	return nil
}

// PreviewBatch produces one NamePreview per requested principal, in request
// order, with exactly one uniqueness probe each. A bad principal yields a
// preview row carrying an error instead of sinking the whole batch.
func (s *Service) PreviewBatch(ctx context.Context, req BatchCreateRequest) ([]NamePreview, error) {
	if len(req.PrincipalIDs) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	org, err := s.orgs.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}

	principals, err := s.principals.GetByIDs(ctx, req.PrincipalIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	previews := make([]NamePreview, 0, len(req.PrincipalIDs))
	for _, pid := range req.PrincipalIDs {
		preview := NamePreview{PrincipalID: pid}

		principal, ok := principals[pid]
		if !ok {
			preview.Error = "principal not found"
			previews = append(previews, preview)
			continue
		}
		preview.PrincipalName = principal.Name

		name, err := GenerateName(org.Name, principal.Name, req.Context, now)
		if err != nil {
			preview.Error = err.Error()
			previews = append(previews, preview)
			continue
		}
		preview.GeneratedName = name

		exists, err := s.opps.NameExists(ctx, name)
		if err != nil {
			preview.Error = "could not check for duplicates"
			previews = append(previews, preview)
			continue
		}
		preview.IsDuplicate = exists
		previews = append(previews, preview)
	}

	return previews, nil
}

// CreateBatch persists one opportunity per principal. Shared fields are
// validated once up front; after that every principal is attempted
// independently and failures are reported per item, never thrown.
func (s *Service) CreateBatch(ctx context.Context, req BatchCreateRequest) (*BatchResult, error) {
	if len(req.PrincipalIDs) == 0 {
		return nil, newValidationError("principal_ids", "at least one principal is required")
	}
	if len(req.PrincipalIDs) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}
	if verr := s.validateShared(req.Stage, req.Probability, req.CloseDate); verr != nil {
		return nil, verr
	}
	if !req.AutoName && len(req.ManualNames) != len(req.PrincipalIDs) {
		return nil, newValidationError("manual_names", "must match principal_ids one to one")
	}
	if req.AutoName && len(req.ManualNames) > 0 {
		return nil, newValidationError("manual_names", "must be empty when auto_name is set")
	}

	org, err := s.orgs.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}

	principals, err := s.principals.GetByIDs(ctx, req.PrincipalIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &BatchResult{
		Created: []domain.Opportunity{},
		Failed:  []BatchFailure{},
	}

	for i, pid := range req.PrincipalIDs {
		principal, ok := principals[pid]
		if !ok {
			result.Failed = append(result.Failed, BatchFailure{PrincipalID: pid, Reason: "principal not found"})
			continue
		}

		var name string
		if req.AutoName {
			name, err = GenerateName(org.Name, principal.Name, req.Context, now)
			if err != nil {
				result.Failed = append(result.Failed, BatchFailure{PrincipalID: pid, Reason: err.Error()})
				continue
			}
		} else {
			name = strings.TrimSpace(req.ManualNames[i])
			if name == "" {
				result.Failed = append(result.Failed, BatchFailure{PrincipalID: pid, Reason: "manual name is empty"})
				continue
			}
		}

		opp := &domain.Opportunity{
			Name:           name,
			OrganizationID: req.OrganizationID,
			PrincipalID:    pid,
			ProductID:      req.ProductID,
			Context:        req.Context,
			Stage:          req.Stage,
			Probability:    req.Probability,
			Value:          req.Value,
			CloseDate:      req.CloseDate,
			DealOwner:      req.DealOwner,
			Notes:          req.Notes,
			NameIsCustom:   !req.AutoName,
		}

		if err := s.opps.Create(ctx, opp); err != nil {
			reason := err.Error()
			if isUniqueViolation(err) {
				reason = "duplicate opportunity name"
			}
			result.Failed = append(result.Failed, BatchFailure{PrincipalID: pid, Reason: reason})
			continue
		}

		result.Created = append(result.Created, *opp)
		s.publish("opportunity.created", opp)
	}

	return result, nil
}

// validateShared checks the fields every row of a batch shares, once, so a
// single mistake does not fan out into N identical failures.
func (s *Service) validateShared(stage domain.Stage, probability int, closeDate *time.Time) *ValidationError {
	fields := make(map[string]string)

	if !stage.Valid() {
		fields["stage"] = "unknown stage"
	}
	if probability < 0 || probability > 100 {
		fields["probability"] = "must be between 0 and 100"
	}
	if closeDate != nil {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if closeDate.Before(today) {
			fields["close_date"] = "must not be in the past"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) publish(eventType string, opp *domain.Opportunity) {
	if s.events == nil {
		return
	}
	s.events.Publish(realtime.Event{
		Type:    eventType,
		Entity:  "opportunity",
		ID:      opp.ID.String(),
		Payload: opp,
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
