package catalog

import (
	"context"

	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
	"pipelinecrm/internal/realtime"
	"pipelinecrm/internal/repository"
)

// EventPublisher pushes catalog change events to realtime subscribers.
type EventPublisher interface {
	Publish(event realtime.Event)
}

// Service covers the three catalog entities the opportunity form depends on:
// organizations, their principals, and the product list.
type Service struct {
	orgs       *repository.OrganizationRepository
	principals *repository.PrincipalRepository
	products   *repository.ProductRepository
	events     EventPublisher
}

func NewService(
	orgs *repository.OrganizationRepository,
	principals *repository.PrincipalRepository,
	products *repository.ProductRepository,
	events EventPublisher,
) *Service {
	return &Service{
		orgs:       orgs,
		principals: principals,
		products:   products,
		events:     events,
	}
}

// Organizations

func (s *Service) ListOrganizations(ctx context.Context, f repository.OrganizationFilters) (*OrganizationListResponse, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	orgs, total, err := s.orgs.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return &OrganizationListResponse{Organizations: orgs, Total: total}, nil
}

func (s *Service) GetOrganization(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *Service) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*domain.Organization, error) {
	org := &domain.Organization{
		Name:     req.Name,
		Type:     req.Type,
		Segment:  req.Segment,
		City:     req.City,
		IsActive: true,
	}
	if org.Type == "" {
		org.Type = domain.OrgTypeProspect
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}
	s.publish("organization.created", "organization", org.ID, org)
	return org, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, id uuid.UUID, req UpdateOrganizationRequest) (*domain.Organization, error) {
	org, err := s.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Type != nil {
		org.Type = *req.Type
	}
	if req.Segment != nil {
		org.Segment = *req.Segment
	}
	if req.City != nil {
		org.City = *req.City
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	s.publish("organization.updated", "organization", org.ID, org)
	return org, nil
}

func (s *Service) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetOrganization(ctx, id); err != nil {
		return err
	}
	if err := s.orgs.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish("organization.deleted", "organization", id, nil)
	return nil
}

// Principals

func (s *Service) ListPrincipals(ctx context.Context, f repository.PrincipalFilters) (*PrincipalListResponse, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 100
	}
	principals, total, err := s.principals.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return &PrincipalListResponse{Principals: principals, Total: total}, nil
}

func (s *Service) GetPrincipal(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	p, err := s.principals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPrincipalNotFound
	}
	return p, nil
}

func (s *Service) CreatePrincipal(ctx context.Context, req CreatePrincipalRequest) (*domain.Principal, error) {
	org, err := s.orgs.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	p := &domain.Principal{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Title:          req.Title,
		Email:          req.Email,
		Phone:          req.Phone,
		IsActive:       true,
	}
	if err := s.principals.Create(ctx, p); err != nil {
		return nil, err
	}
	s.publish("principal.created", "principal", p.ID, p)
	return p, nil
}

func (s *Service) UpdatePrincipal(ctx context.Context, id uuid.UUID, req UpdatePrincipalRequest) (*domain.Principal, error) {
	p, err := s.GetPrincipal(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.principals.Update(ctx, p); err != nil {
		return nil, err
	}
	s.publish("principal.updated", "principal", p.ID, p)
	return p, nil
}

func (s *Service) DeletePrincipal(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPrincipal(ctx, id); err != nil {
		return err
	}
	if err := s.principals.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish("principal.deleted", "principal", id, nil)
	return nil
}

// Products

func (s *Service) ListProducts(ctx context.Context, f repository.ProductFilters) (*ProductListResponse, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 100
	}
	products, total, err := s.products.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ProductListResponse{Products: products, Total: total}, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		Name:     req.Name,
		Category: req.Category,
		SKU:      req.SKU,
		IsActive: true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.publish("product.created", "product", p.ID, p)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.publish("product.updated", "product", p.ID, p)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish("product.deleted", "product", id, nil)
	return nil
}

func (s *Service) publish(eventType, entity string, id uuid.UUID, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(realtime.Event{
		Type:    eventType,
		Entity:  entity,
		ID:      id.String(),
		Payload: payload,
	})
}
