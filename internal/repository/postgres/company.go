package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
)

// PostgresCompanyRepository implements the CompanyRepository interface.
type PostgresCompanyRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(config *RepositoryConfig) repositories.CompanyRepository {
	return &PostgresCompanyRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, api_token)
		VALUES ($1, $2)
		RETURNING id, created_at, last_updated_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, company.Name, company.APIToken).
		Scan(&company.ID, &company.CreatedAt, &company.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	return nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	query := `
		SELECT id, name, api_token, created_at, last_updated_at
		FROM companies
		WHERE id = $1
	`

	var company models.Company
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.APIToken,
		&company.CreatedAt,
		&company.LastUpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("company %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &company, nil
}

func (r *PostgresCompanyRepository) GetByAPIToken(ctx context.Context, token string) (*models.Company, error) {
	query := `
		SELECT id, name, api_token, created_at, last_updated_at
		FROM companies
		WHERE api_token = $1
	`

	var company models.Company
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token).Scan(
		&company.ID,
		&company.Name,
		&company.APIToken,
		&company.CreatedAt,
		&company.LastUpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("company by api token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company by api token: %w", err)
	}

	return &company, nil
}

func (r *PostgresCompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	query := `
		SELECT id, name, api_token, created_at, last_updated_at
		FROM companies
		ORDER BY created_at DESC
	`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.APIToken,
			&company.CreatedAt,
			&company.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $2, api_token = $3, last_updated_at = now()
		WHERE id = $1
		RETURNING last_updated_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, company.ID, company.Name, company.APIToken).
		Scan(&company.LastUpdatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("company %s: %w", company.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update company: %w", err)
	}

	return nil
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id string) error {
	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("company %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
