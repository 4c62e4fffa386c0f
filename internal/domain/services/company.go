package services

import (
	"context"

	"zapflow/internal/domain/models"
)

// CreateCompanyRequest registers a company. APIToken is the ZapSign-side
// credential; it also authenticates the company on the automation surface.
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	APIToken string `json:"api_token"`
}

// UpdateCompanyRequest updates company fields; only non-nil fields change.
type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	APIToken *string `json:"api_token"`
}

// CompanyService manages companies.
type CompanyService interface {
	Create(ctx context.Context, req *CreateCompanyRequest) (*models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, id string, req *UpdateCompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}
