package company

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/services"
)

type fakeCompanyRepo struct {
	companies map[string]*models.Company
	updated   *models.Company
	deleted   []string
}

func newFakeRepo(companies ...*models.Company) *fakeCompanyRepo {
	repo := &fakeCompanyRepo{companies: map[string]*models.Company{}}
	for _, c := range companies {
		repo.companies[c.ID] = c
	}
	return repo
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	company.ID = "co-created"
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "company not found"}
	}
	return company, nil
}

func (r *fakeCompanyRepo) GetByAPIToken(ctx context.Context, token string) (*models.Company, error) {
	for _, c := range r.companies {
		if c.APIToken == token {
			return c, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "company not found"}
}

func (r *fakeCompanyRepo) List(ctx context.Context) ([]models.Company, error) {
	out := make([]models.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	r.updated = company
	return nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.companies, id)
	return nil
}

func newService(repo *fakeCompanyRepo) services.CompanyService {
	return NewCompanyService(repo, slog.New(slog.DiscardHandler))
}

func TestCreate_TrimsAndStores(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	company, err := svc.Create(context.Background(), &services.CreateCompanyRequest{
		Name:     "  Acme  ",
		APIToken: "  zapsign-token  ",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if company.Name != "Acme" {
		t.Errorf("Name = %q, want trimmed", company.Name)
	}
	if company.APIToken != "zapsign-token" {
		t.Errorf("APIToken = %q, want trimmed", company.APIToken)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.Create(context.Background(), &services.CreateCompanyRequest{Name: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
}

func TestUpdate_AppliesOnlySuppliedFields(t *testing.T) {
	existing := &models.Company{ID: "co-1", Name: "Acme", APIToken: "old-token"}
	repo := newFakeRepo(existing)
	svc := newService(repo)

	newToken := "new-token"
	company, err := svc.Update(context.Background(), "co-1", &services.UpdateCompanyRequest{
		APIToken: &newToken,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if company.Name != "Acme" {
		t.Errorf("Name = %q, must stay untouched", company.Name)
	}
	if company.APIToken != "new-token" {
		t.Errorf("APIToken = %q", company.APIToken)
	}
	if repo.updated == nil {
		t.Error("Update must reach the repository")
	}
}

func TestUpdate_RejectsEmptyName(t *testing.T) {
	repo := newFakeRepo(&models.Company{ID: "co-1", Name: "Acme"})
	svc := newService(repo)

	empty := "  "
	_, err := svc.Update(context.Background(), "co-1", &services.UpdateCompanyRequest{Name: &empty})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Update() error = %v, want validation error", err)
	}
	if repo.updated != nil {
		t.Error("invalid update must not reach the repository")
	}
}

func TestDelete_UnknownCompany(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	err := svc.Delete(context.Background(), "co-missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete() error = %v, want not found", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("nothing should be deleted")
	}
}
