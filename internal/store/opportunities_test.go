package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/modules/opportunity"
	"pipelinecrm/internal/repository"
)

// fakeAPI lets each test script the client behavior.
type fakeAPI struct {
	listFn   func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error)
	createFn func(ctx context.Context, req opportunity.CreateOpportunityRequest) (*domain.Opportunity, error)
	updateFn func(ctx context.Context, id uuid.UUID, req opportunity.UpdateOpportunityRequest) (*domain.Opportunity, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error

	getCalls int
}

func (f *fakeAPI) ListOpportunities(ctx context.Context, filters repository.OpportunityFilters) (*opportunity.ListResponse, error) {
	return f.listFn(ctx, filters)
}

func (f *fakeAPI) GetOpportunity(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	f.getCalls++
	return f.getFn(ctx, id)
}

func (f *fakeAPI) CreateOpportunity(ctx context.Context, req opportunity.CreateOpportunityRequest) (*domain.Opportunity, error) {
	return f.createFn(ctx, req)
}

func (f *fakeAPI) UpdateOpportunity(ctx context.Context, id uuid.UUID, req opportunity.UpdateOpportunityRequest) (*domain.Opportunity, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeAPI) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func opp(name string, stage domain.Stage, probability int, value float64) domain.Opportunity {
	return domain.Opportunity{
		ID:          uuid.New(),
		Name:        name,
		Stage:       stage,
		Probability: probability,
		Value:       value,
		UpdatedAt:   time.Now(),
	}
}

func TestFetchList_PopulatesCacheAndKPIs(t *testing.T) {
	a := opp("Deal A", domain.StageNewLead, 20, 1000)
	b := opp("Deal B", domain.StageDemoScheduled, 80, 2000)
	won := opp("Deal C", domain.StageClosedWon, 100, 500)

	api := &fakeAPI{
		listFn: func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
			return &opportunity.ListResponse{
				Opportunities: []domain.Opportunity{a, b, won},
				Total:         3,
			}, nil
		},
	}

	s := NewOpportunityStore(api)
	require.NoError(t, s.FetchList(context.Background(), repository.OpportunityFilters{}))

	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())
	assert.Len(t, s.Items(), 3)

	k := s.KPIs()
	assert.Equal(t, int64(3), k.Total)
	assert.Equal(t, 2, k.Active)
	assert.Equal(t, 1, k.WonThisMonth)
	assert.InDelta(t, (20+80+100)/3.0, k.AvgProbability, 0.001)
	assert.InDelta(t, 1000*0.2+2000*0.8, k.PipelineValue, 0.001)
}

func TestFetchList_ErrorPopulatesSlotNotPanic(t *testing.T) {
	api := &fakeAPI{
		listFn: func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
			return nil, errors.New("network down")
		},
	}

	s := NewOpportunityStore(api)
	err := s.FetchList(context.Background(), repository.OpportunityFilters{})

	assert.Error(t, err)
	assert.Error(t, s.Err())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Items())
}

func TestFetchOne_SecondCallIsCacheHit(t *testing.T) {
	target := opp("Deal A", domain.StageNewLead, 20, 0)
	api := &fakeAPI{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
			return &target, nil
		},
	}

	s := NewOpportunityStore(api)

	first, err := s.FetchOne(context.Background(), target.ID)
	require.NoError(t, err)
	second, err := s.FetchOne(context.Background(), target.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.getCalls)
}

func TestFetchOne_ReturnsCopyNotCacheEntry(t *testing.T) {
	target := opp("Deal A", domain.StageNewLead, 20, 0)
	api := &fakeAPI{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
			return &target, nil
		},
	}

	s := NewOpportunityStore(api)

	first, err := s.FetchOne(context.Background(), target.ID)
	require.NoError(t, err)
	first.Name = "mutated by caller"

	second, err := s.FetchOne(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deal A", second.Name)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, api.getCalls)
}

func TestCreate_PatchesListAndKPIs(t *testing.T) {
	api := &fakeAPI{
		listFn: func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
			return &opportunity.ListResponse{Opportunities: []domain.Opportunity{}, Total: 0}, nil
		},
		createFn: func(ctx context.Context, req opportunity.CreateOpportunityRequest) (*domain.Opportunity, error) {
			created := opp("Fresh Deal", req.Stage, req.Probability, req.Value)
			return &created, nil
		},
	}

	s := NewOpportunityStore(api)
	require.NoError(t, s.FetchList(context.Background(), repository.OpportunityFilters{}))

	_, err := s.Create(context.Background(), opportunity.CreateOpportunityRequest{
		Stage:       domain.StageNewLead,
		Probability: 50,
		Value:       800,
	})
	require.NoError(t, err)

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, int64(1), s.Total())
	assert.Equal(t, int64(1), s.KPIs().Total)
	assert.InDelta(t, 400.0, s.KPIs().PipelineValue, 0.001)
}

func TestRemove_DecrementsTotalWithoutReload(t *testing.T) {
	a := opp("Deal A", domain.StageNewLead, 20, 100)
	b := opp("Deal B", domain.StageNewLead, 40, 100)

	api := &fakeAPI{
		listFn: func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
			return &opportunity.ListResponse{Opportunities: []domain.Opportunity{a, b}, Total: 2}, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}

	s := NewOpportunityStore(api)
	require.NoError(t, s.FetchList(context.Background(), repository.OpportunityFilters{}))
	require.Equal(t, int64(2), s.KPIs().Total)

	require.NoError(t, s.Remove(context.Background(), a.ID))

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
	assert.Equal(t, int64(1), s.KPIs().Total)
}

func TestUpdate_PatchesRowInPlace(t *testing.T) {
	a := opp("Deal A", domain.StageNewLead, 20, 100)

	api := &fakeAPI{
		listFn: func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
			return &opportunity.ListResponse{Opportunities: []domain.Opportunity{a}, Total: 1}, nil
		},
		updateFn: func(ctx context.Context, id uuid.UUID, req opportunity.UpdateOpportunityRequest) (*domain.Opportunity, error) {
			updated := a
			updated.Stage = *req.Stage
			updated.UpdatedAt = time.Now()
			return &updated, nil
		},
	}

	s := NewOpportunityStore(api)
	require.NoError(t, s.FetchList(context.Background(), repository.OpportunityFilters{}))

	stage := domain.StageDemoScheduled
	_, err := s.Update(context.Background(), a.ID, opportunity.UpdateOpportunityRequest{Stage: &stage})
	require.NoError(t, err)

	assert.Equal(t, domain.StageDemoScheduled, s.Items()[0].Stage)
}

func TestInvalidate_DiscardsLateResponse(t *testing.T) {
	a := opp("Deal A", domain.StageNewLead, 20, 100)

	s := NewOpportunityStore(nil)
	api := &fakeAPI{
		listFn: func(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
			// Simulates navigating away while the request is in flight: the
			// invalidation lands before the response does.
			s.Invalidate()
			return &opportunity.ListResponse{Opportunities: []domain.Opportunity{a}, Total: 1}, nil
		},
	}
	s.api = api

	err := s.FetchList(context.Background(), repository.OpportunityFilters{})
	assert.NoError(t, err)

	// The late response must not repopulate the invalidated store.
	assert.Empty(t, s.Items())
	assert.Equal(t, int64(0), s.Total())
	assert.Equal(t, KPIs{}, s.KPIs())
}

func TestInvalidate_ClearsDetailCache(t *testing.T) {
	target := opp("Deal A", domain.StageNewLead, 20, 0)
	api := &fakeAPI{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
			return &target, nil
		},
	}

	s := NewOpportunityStore(api)
	_, err := s.FetchOne(context.Background(), target.ID)
	require.NoError(t, err)

	s.Invalidate()

	_, err = s.FetchOne(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, api.getCalls)
}
