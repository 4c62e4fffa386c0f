package handler

import (
	"log/slog"
	"net/http"

	"zapflow/internal/domain/services"
	"zapflow/internal/httputil"
)

// CompanyHandler handles company HTTP requests.
type CompanyHandler struct {
	companyService services.CompanyService
	logger         *slog.Logger
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(companyService services.CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, logger: logger}
}

// CreateCompany registers a company.
// POST /api/companies
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCompanyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.companyService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, company)
}

// ListCompanies returns all companies, newest first.
// GET /api/companies
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, companies)
}

// GetCompany returns one company.
// GET /api/companies/{id}
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "company id")
	if !ok {
		return
	}

	company, err := h.companyService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, company)
}

// UpdateCompany updates company fields.
// PATCH /api/companies/{id}
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "company id")
	if !ok {
		return
	}

	var req services.UpdateCompanyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.companyService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, company)
}

// DeleteCompany removes a company and its documents.
// DELETE /api/companies/{id}
func (h *CompanyHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "company id")
	if !ok {
		return
	}

	if err := h.companyService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
