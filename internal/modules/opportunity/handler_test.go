package opportunity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pipelinecrm/internal/domain"
)

func setupRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandler_CreateBatch_PartialFailureStill201(t *testing.T) {
	opps := new(MockOpportunityRepository)
	orgs := new(MockOrganizationRepository)
	principals := new(MockPrincipalRepository)

	svc := NewService(opps, orgs, principals, nil)
	svc.now = func() time.Time { return fixedNow }
	r := setupRouter(svc)

	org := testOrg()
	p1 := testPrincipal(org.ID, "Jane Doe")
	p2 := testPrincipal(org.ID, "Bob Smith")

	orgs.On("GetByID", mock.Anything, org.ID).Return(org, nil)
	principals.On("GetByIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*domain.Principal{p1.ID: p1, p2.ID: p2}, nil)
	opps.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Opportunity) bool {
		return o.PrincipalID == p2.ID
	})).Return(fmt.Errorf("server-side validation failed"))
	opps.On("Create", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(BatchCreateRequest{
		OrganizationID: org.ID,
		PrincipalIDs:   []uuid.UUID{p1.ID, p2.ID},
		Context:        domain.ContextNewBusiness,
		Stage:          domain.StageNewLead,
		Probability:    20,
		AutoName:       true,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/opportunities/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    BatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Created, 1)
	assert.Len(t, resp.Data.Failed, 1)
	assert.Equal(t, p2.ID, resp.Data.Failed[0].PrincipalID)
}

func TestHandler_Get_NotFoundEnvelope(t *testing.T) {
	opps := new(MockOpportunityRepository)
	svc := NewService(opps, new(MockOrganizationRepository), new(MockPrincipalRepository), nil)
	r := setupRouter(svc)

	id := uuid.New()
	opps.On("GetByID", mock.Anything, id).Return(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities/"+id.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestHandler_Create_ValidationDetails(t *testing.T) {
	svc := NewService(new(MockOpportunityRepository), new(MockOrganizationRepository), new(MockPrincipalRepository), nil)
	svc.now = func() time.Time { return fixedNow }
	r := setupRouter(svc)

	body, _ := json.Marshal(CreateOpportunityRequest{
		OrganizationID: uuid.New(),
		PrincipalID:    uuid.New(),
		Stage:          domain.StageNewLead,
		Probability:    101,
		Name:           "Bad Deal",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "probability")
}
