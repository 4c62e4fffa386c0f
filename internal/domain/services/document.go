package services

import (
	"context"

	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
)

// SignerInput is a signer as supplied by API clients.
type SignerInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ExternalID string `json:"external_id"`
}

// CreateDocumentRequest creates a document in draft with its signers.
type CreateDocumentRequest struct {
	CompanyID  string        `json:"company_id"`
	Name       string        `json:"name"`
	CreatedBy  string        `json:"created_by"`
	ExternalID string        `json:"external_id"`
	Signers    []SignerInput `json:"signers"`
}

// UpdateDocumentRequest updates simple document fields. A non-nil Signers
// slice replaces the whole signer set; an empty replacement is rejected.
type UpdateDocumentRequest struct {
	Name       *string        `json:"name"`
	CreatedBy  *string        `json:"created_by"`
	ExternalID *string        `json:"external_id"`
	Signers    *[]SignerInput `json:"signers"`
}

// StatusReport is the result of polling the provider for a document's state.
// Raw preserves the provider payload for observability; it is not persisted.
type StatusReport struct {
	DocumentID string                `json:"document_id"`
	Status     models.DocumentStatus `json:"status"`
	Raw        ProviderResponse      `json:"raw"`
}

// DocumentService is the document lifecycle engine: creation, content
// management, provider hand-off, status synchronization and analysis.
type DocumentService interface {
	Create(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
	Update(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)

	// Delete removes a document unless it has been signed.
	Delete(ctx context.Context, id string) error

	SetContent(ctx context.Context, documentID string, content *models.DocumentContent) (*models.DocumentContent, error)
	GetContent(ctx context.Context, documentID string) (*models.DocumentContent, error)

	// Send hands a draft document to the signature provider and absorbs the
	// provider response back into local state.
	Send(ctx context.Context, documentID string) (*models.Document, error)

	// SyncStatus polls the provider and normalizes the remote state onto the
	// canonical vocabulary, reconciling signers by email.
	SyncStatus(ctx context.Context, documentID string) (*StatusReport, error)

	// Analyze resolves the document's text (explicit override, then stored
	// markdown, then stored PDF) and runs the configured analyzer over it.
	Analyze(ctx context.Context, documentID, overrideText string) (*AnalysisResult, error)

	Report(ctx context.Context, filter repositories.ReportFilter) (*repositories.Report, error)
}
