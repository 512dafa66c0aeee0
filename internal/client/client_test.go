package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelinecrm/internal/repository"
)

func TestClient_DecodesSuccessEnvelope(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/opportunities/"+id.String(), r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"` + id.String() + `","name":"Test Corp - Jane Doe - New Business - Jan 2025","stage":"NEW_LEAD","probability":25}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token")
	opp, err := c.GetOpportunity(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, opp.ID)
	assert.Equal(t, 25, opp.Probability)
}

func TestClient_MapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Opportunity not found"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.GetOpportunity(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_MapsValidationWithDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":{"probability":"must be between 0 and 100"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.ListOpportunities(context.Background(), repository.OpportunityFilters{})
	assert.ErrorIs(t, err, ErrValidation)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Details, "probability")
}

func TestClient_NetworkFailureIsPersistence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, "")
	_, err := c.GetOpportunity(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPersistence)
}
