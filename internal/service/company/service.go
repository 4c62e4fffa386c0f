// Package company implements company management.
package company

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/domain/services"
)

type companyService struct {
	repo   repositories.CompanyRepository
	logger *slog.Logger
}

// NewCompanyService creates the company service.
func NewCompanyService(repo repositories.CompanyRepository, logger *slog.Logger) services.CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) Create(ctx context.Context, req *services.CreateCompanyRequest) (*models.Company, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.APIToken = strings.TrimSpace(req.APIToken)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required.Error("company name is required")),
	)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	company := &models.Company{Name: req.Name, APIToken: req.APIToken}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info("company created", "company_id", company.ID)
	return company, nil
}

func (s *companyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context) ([]models.Company, error) {
	return s.repo.List(ctx)
}

func (s *companyService) Update(ctx context.Context, id string, req *services.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &domain.ValidationError{Message: "company name is required"}
		}
		company.Name = name
	}
	if req.APIToken != nil {
		company.APIToken = strings.TrimSpace(*req.APIToken)
	}

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company and, by cascade, all its documents.
func (s *companyService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
