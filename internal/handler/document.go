package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"zapflow/internal/domain/models"
	"zapflow/internal/domain/services"
	"zapflow/internal/httputil"
)

// DocumentHandler handles document HTTP requests.
// Handlers only communicate with services, never repositories.
type DocumentHandler struct {
	documentService services.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, logger: logger}
}

// CreateDocument creates a draft document with its signers.
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy = httputil.GetUserID(r)
	}

	doc, err := h.documentService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListDocuments returns all documents with signers, newest first.
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument returns one document with company, signers and content.
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument updates document fields and optionally replaces signers.
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	var req services.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.documentService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document unless it has been signed.
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type contentRequest struct {
	ContentType  string `json:"content_type"`
	MarkdownText string `json:"markdown_text"`
	PDFURL       string `json:"pdf_url"`
}

// PutContent creates or replaces the document's content.
// PUT /api/documents/{id}/content
func (h *DocumentHandler) PutContent(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := h.documentService.SetContent(r.Context(), id, &models.DocumentContent{
		ContentType:  models.ContentType(req.ContentType),
		MarkdownText: req.MarkdownText,
		PDFURL:       req.PDFURL,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// GetContent returns the document's content record.
// GET /api/documents/{id}/content
func (h *DocumentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	content, err := h.documentService.GetContent(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// SendDocument hands a draft document to the signature provider.
// POST /api/documents/{id}/send
func (h *DocumentHandler) SendDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	doc, err := h.documentService.Send(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SyncStatus polls the provider and reconciles local state.
// GET /api/documents/{id}/status
func (h *DocumentHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	report, err := h.documentService.SyncStatus(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// AnalyzeDocument runs text analysis over the document's content, or over an
// optional explicit text override. The body is optional.
// POST /api/documents/{id}/analysis
func (h *DocumentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "document id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.documentService.Analyze(r.Context(), id, req.Text)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
