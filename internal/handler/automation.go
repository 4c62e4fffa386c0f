package handler

import (
	"log/slog"
	"net/http"
	"time"

	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/domain/services"
	"zapflow/internal/httputil"
)

// defaultAutomationUser is recorded as the creator when an automation client
// does not name one.
const defaultAutomationUser = "automation"

// AutomationHandler serves the API-key surface. The company is resolved by
// the API-key middleware and every operation is scoped to it.
type AutomationHandler struct {
	documentService services.DocumentService
	logger          *slog.Logger
}

// NewAutomationHandler creates a new automation handler.
func NewAutomationHandler(documentService services.DocumentService, logger *slog.Logger) *AutomationHandler {
	return &AutomationHandler{documentService: documentService, logger: logger}
}

type createSendRequest struct {
	Name         string                 `json:"name"`
	CreatedBy    string                 `json:"created_by"`
	ExternalID   string                 `json:"external_id"`
	Signers      []services.SignerInput `json:"signers"`
	ContentType  string                 `json:"content_type"`
	MarkdownText string                 `json:"markdown_text"`
	PDFURL       string                 `json:"pdf_url"`
}

// CreateSend creates a document, sets its content and sends it to the
// signature provider in one call.
// POST /api/automations/create_send
func (h *AutomationHandler) CreateSend(w http.ResponseWriter, r *http.Request) {
	company := httputil.GetCompany(r)

	var req createSendRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy = defaultAutomationUser
	}

	doc, err := h.documentService.Create(r.Context(), &services.CreateDocumentRequest{
		CompanyID:  company.ID,
		Name:       req.Name,
		CreatedBy:  req.CreatedBy,
		ExternalID: req.ExternalID,
		Signers:    req.Signers,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	if _, err := h.documentService.SetContent(r.Context(), doc.ID, &models.DocumentContent{
		ContentType:  models.ContentType(req.ContentType),
		MarkdownText: req.MarkdownText,
		PDFURL:       req.PDFURL,
	}); err != nil {
		handleError(w, err)
		return
	}

	sent, err := h.documentService.Send(r.Context(), doc.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("automation create_send completed",
		"document_id", sent.ID,
		"company_id", company.ID,
	)
	httputil.RespondJSON(w, http.StatusCreated, sent)
}

// AnalyzeDocument runs text analysis over a document owned by the caller.
// GET /api/automations/analysis/{id}
func (h *AutomationHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	company := httputil.GetCompany(r)

	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if doc.CompanyID != company.ID {
		httputil.RespondError(w, http.StatusNotFound, "document not found")
		return
	}

	result, err := h.documentService.Analyze(r.Context(), id, "")
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DocumentReport aggregates the caller's documents by status.
// GET /api/automations/reports/documents?status=&date_from=&date_to=
func (h *AutomationHandler) DocumentReport(w http.ResponseWriter, r *http.Request) {
	company := httputil.GetCompany(r)

	filter := repositories.ReportFilter{CompanyID: company.ID}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.DocumentStatus(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "date_from must be YYYY-MM-DD")
			return
		}
		filter.DateFrom = &from
	}
	if raw := r.URL.Query().Get("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "date_to must be YYYY-MM-DD")
			return
		}
		filter.DateTo = &to
	}

	report, err := h.documentService.Report(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
