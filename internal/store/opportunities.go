package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/modules/opportunity"
	"pipelinecrm/internal/repository"
)

// API is the slice of the CRM client the store consumes.
type API interface {
	ListOpportunities(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error)
	GetOpportunity(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error)
	CreateOpportunity(ctx context.Context, req opportunity.CreateOpportunityRequest) (*domain.Opportunity, error)
	UpdateOpportunity(ctx context.Context, id uuid.UUID, req opportunity.UpdateOpportunityRequest) (*domain.Opportunity, error)
	DeleteOpportunity(ctx context.Context, id uuid.UUID) error
}

// KPIs are the aggregates derived from the cached page. PipelineValue is
// approximate: it only covers the loaded page.
type KPIs struct {
	Total          int64   `json:"total"`
	Active         int     `json:"active"`
	AvgProbability float64 `json:"avg_probability"`
	WonThisMonth   int     `json:"won_this_month"`
	PipelineValue  float64 `json:"pipeline_value"`
}

// OpportunityStore caches the currently loaded opportunity page, the active
// filter set, and KPI aggregates. Each instance is independent; construct one
// per view (or per test). All mutation goes through the action methods so the
// cache and KPIs stay consistent.
//
// Every action runs one network call. A generation counter guards against
// late responses: Invalidate bumps it, and responses captured under an older
// generation are discarded instead of clobbering state for a view that no
// longer exists.
type OpportunityStore struct {
	mu  sync.Mutex
	api API

	generation uint64
	loading    bool
	err        error

	items   []domain.Opportunity
	details map[uuid.UUID]*domain.Opportunity
	filters repository.OpportunityFilters
	total   int64
	kpis    KPIs

	now func() time.Time
}

func NewOpportunityStore(api API) *OpportunityStore {
	return &OpportunityStore{
		api:     api,
		details: make(map[uuid.UUID]*domain.Opportunity),
		now:     time.Now,
	}
}

// begin marks the store loading and returns the generation this operation
// belongs to.
func (s *OpportunityStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = nil
	return s.generation
}

// finish applies fn to the store unless the generation moved on while the
// network call was in flight. It reports whether the result was applied.
func (s *OpportunityStore) finish(gen uint64, err error, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Stale response; the view that asked for it is gone.
		return false
	}

	s.loading = false
	s.err = err
	if err == nil && fn != nil {
		fn()
	}
	return err == nil
}

// Invalidate discards all cached state and orphans in-flight requests. Call
// it when navigating away from the view this store backs.
func (s *OpportunityStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = false
	s.err = nil
	s.items = nil
	s.details = make(map[uuid.UUID]*domain.Opportunity)
	s.total = 0
	s.kpis = KPIs{}
}

// FetchList loads a page with the given filters into the cache.
func (s *OpportunityStore) FetchList(ctx context.Context, f repository.OpportunityFilters) error {
	gen := s.begin()

	list, err := s.api.ListOpportunities(ctx, f)

	s.finish(gen, err, func() {
		s.items = list.Opportunities
		s.filters = f
		s.total = list.Total
		s.recomputeKPIs()
	})
	return err
}

// FetchOne returns the opportunity, from the detail cache when an unexpired
// copy exists. Mutations evict their id, so a cached read is never stale with
// respect to this store's own writes.
func (s *OpportunityStore) FetchOne(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	s.mu.Lock()
	if cached, ok := s.details[id]; ok {
		out := *cached
		s.mu.Unlock()
		return &out, nil
	}
	s.mu.Unlock()

	gen := s.begin()
	opp, err := s.api.GetOpportunity(ctx, id)
	s.finish(gen, err, func() {
		s.details[id] = opp
	})
	if err != nil {
		return nil, err
	}
	out := *opp
	return &out, nil
}

// Create persists a new opportunity and patches the cached list so KPIs
// reflect it without a reload.
func (s *OpportunityStore) Create(ctx context.Context, req opportunity.CreateOpportunityRequest) (*domain.Opportunity, error) {
	gen := s.begin()

	opp, err := s.api.CreateOpportunity(ctx, req)

	s.finish(gen, err, func() {
		s.items = append([]domain.Opportunity{*opp}, s.items...)
		s.total++
		s.details[opp.ID] = opp
		s.recomputeKPIs()
	})
	if err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *OpportunityStore) Update(ctx context.Context, id uuid.UUID, req opportunity.UpdateOpportunityRequest) (*domain.Opportunity, error) {
	gen := s.begin()

	opp, err := s.api.UpdateOpportunity(ctx, id, req)

	s.finish(gen, err, func() {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i] = *opp
				break
			}
		}
		s.details[id] = opp
		s.recomputeKPIs()
	})
	if err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *OpportunityStore) Remove(ctx context.Context, id uuid.UUID) error {
	gen := s.begin()

	err := s.api.DeleteOpportunity(ctx, id)

	s.finish(gen, err, func() {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				s.total--
				break
			}
		}
		delete(s.details, id)
		s.recomputeKPIs()
	})
	return err
}

// recomputeKPIs derives the aggregates from the cached page. Total comes from
// the server; the rest cover loaded rows only. Caller must hold mu.
func (s *OpportunityStore) recomputeKPIs() {
	k := KPIs{Total: s.total}

	monthStart := time.Date(s.now().Year(), s.now().Month(), 1, 0, 0, 0, 0, s.now().Location())

	var probSum int
	for i := range s.items {
		opp := &s.items[i]
		if opp.IsWon() {
			if opp.UpdatedAt.After(monthStart) || opp.UpdatedAt.Equal(monthStart) {
				k.WonThisMonth++
			}
		} else {
			k.Active++
			k.PipelineValue += opp.Value * float64(opp.Probability) / 100
		}
		probSum += opp.Probability
	}
	if len(s.items) > 0 {
		k.AvgProbability = float64(probSum) / float64(len(s.items))
	}

	s.kpis = k
}

// Observable state accessors.

func (s *OpportunityStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *OpportunityStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *OpportunityStore) Items() []domain.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Opportunity, len(s.items))
	copy(out, s.items)
	return out
}

func (s *OpportunityStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *OpportunityStore) KPIs() KPIs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kpis
}

func (s *OpportunityStore) Filters() repository.OpportunityFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}
