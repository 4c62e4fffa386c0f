package repositories

import (
	"context"

	"zapflow/internal/domain/models"
)

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error

	GetByID(ctx context.Context, id string) (*models.Company, error)

	// GetByAPIToken resolves an automation API key to its company.
	GetByAPIToken(ctx context.Context, token string) (*models.Company, error)

	// List returns all companies, newest first.
	List(ctx context.Context) ([]models.Company, error)

	Update(ctx context.Context, company *models.Company) error

	// Delete removes a company and, by cascade, its documents.
	Delete(ctx context.Context, id string) error
}
