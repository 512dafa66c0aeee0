package catalog

import (
	"github.com/google/uuid"

	"pipelinecrm/internal/domain"
)

type CreateOrganizationRequest struct {
	Name    string                  `json:"name" binding:"required"`
	Type    domain.OrganizationType `json:"type"`
	Segment string                  `json:"segment,omitempty"`
	City    string                  `json:"city,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name     *string                  `json:"name,omitempty"`
	Type     *domain.OrganizationType `json:"type,omitempty"`
	Segment  *string                  `json:"segment,omitempty"`
	City     *string                  `json:"city,omitempty"`
	IsActive *bool                    `json:"is_active,omitempty"`
}

type CreatePrincipalRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	Title          string    `json:"title,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
}

type UpdatePrincipalRequest struct {
	Name     *string `json:"name,omitempty"`
	Title    *string `json:"title,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category,omitempty"`
	SKU      string `json:"sku,omitempty"`
}

type UpdateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	SKU      *string `json:"sku,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type OrganizationListResponse struct {
	Organizations []domain.Organization `json:"organizations"`
	Total         int64                 `json:"total"`
}

type PrincipalListResponse struct {
	Principals []domain.Principal `json:"principals"`
	Total      int64              `json:"total"`
}

type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
}
