package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/modules/opportunity"
	"pipelinecrm/internal/repository"
)

// Client is the typed HTTP client for the CRM API. It decodes the standard
// {success, data} / {success:false, error} envelope and turns error codes into
// the sentinels in errors.go.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrPersistence, err)
	}

	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Code: "INTERNAL_ERROR", Message: "unknown error"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: malformed payload: %v", ErrPersistence, err)
		}
	}
	return nil
}

// ListOpportunities fetches one page with the given filters.
func (c *Client) ListOpportunities(ctx context.Context, f repository.OpportunityFilters) (*opportunity.ListResponse, error) {
	q := url.Values{}
	if f.Stage != "" {
		q.Set("stage", f.Stage)
	}
	if f.Context != "" {
		q.Set("context", f.Context)
	}
	if f.OrganizationID != uuid.Nil {
		q.Set("organization_id", f.OrganizationID.String())
	}
	if f.PrincipalID != uuid.Nil {
		q.Set("principal_id", f.PrincipalID.String())
	}
	if f.DealOwner != "" {
		q.Set("deal_owner", f.DealOwner)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
		if f.SortDesc {
			q.Set("sort_dir", "desc")
		}
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	q.Set("offset", strconv.Itoa(f.Offset))

	var out opportunity.ListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/opportunities?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOpportunity(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var out domain.Opportunity
	if err := c.do(ctx, http.MethodGet, "/api/v1/opportunities/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOpportunity(ctx context.Context, req opportunity.CreateOpportunityRequest) (*domain.Opportunity, error) {
	var out domain.Opportunity
	if err := c.do(ctx, http.MethodPost, "/api/v1/opportunities", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOpportunity(ctx context.Context, id uuid.UUID, req opportunity.UpdateOpportunityRequest) (*domain.Opportunity, error) {
	var out domain.Opportunity
	if err := c.do(ctx, http.MethodPatch, "/api/v1/opportunities/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/opportunities/"+id.String(), nil, nil)
}

func (c *Client) PreviewBatch(ctx context.Context, req opportunity.BatchCreateRequest) ([]opportunity.NamePreview, error) {
	var out struct {
		Previews []opportunity.NamePreview `json:"previews"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/opportunities/batch-preview", req, &out); err != nil {
		return nil, err
	}
	return out.Previews, nil
}

func (c *Client) CreateBatch(ctx context.Context, req opportunity.BatchCreateRequest) (*opportunity.BatchResult, error) {
	var out opportunity.BatchResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/opportunities/batch", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*repository.DashboardKPIRow, error) {
	var out repository.DashboardKPIRow
	if err := c.do(ctx, http.MethodGet, "/api/v1/analytics/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PrincipalActivity(ctx context.Context, limit, offset int) ([]repository.PrincipalActivityRow, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out struct {
		Principals []repository.PrincipalActivityRow `json:"principals"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/analytics/principal-activity?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Principals, nil
}
