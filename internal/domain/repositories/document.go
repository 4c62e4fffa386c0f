package repositories

import (
	"context"
	"time"

	"zapflow/internal/domain/models"
)

// NewSigner is the input shape for creating or replacing signers.
type NewSigner struct {
	Name       string
	Email      string
	ExternalID string
}

// CreateDocumentParams creates a document together with its initial signers.
type CreateDocumentParams struct {
	CompanyID  string
	Name       string
	CreatedBy  string
	ExternalID string
	Signers    []NewSigner
}

// DocumentUpdate is a typed partial update: only non-nil fields are written.
// This is the full set of updatable document fields; anything else is either
// immutable (company) or maintained by the repository (timestamps).
type DocumentUpdate struct {
	Name       *string
	CreatedBy  *string
	ExternalID *string
	OpenID     *int64
	Token      *string
	Status     *models.DocumentStatus
}

// SignerUpdate is the typed partial update applied when reconciling a signer
// against a provider response.
type SignerUpdate struct {
	Status *models.SignerStatus
	Token  *string
}

// ReportFilter scopes the automation report. DateFrom/DateTo are inclusive
// day bounds on created_at.
type ReportFilter struct {
	CompanyID string
	Status    *models.DocumentStatus
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ReportItem is one document row of the automation report.
type ReportItem struct {
	Document    models.Document `json:"document"`
	SignerCount int             `json:"signer_count"`
}

// Report aggregates per-status counts plus the matching documents.
type Report struct {
	Summary map[models.DocumentStatus]int `json:"summary"`
	Items   []ReportItem                  `json:"items"`
}

// DocumentRepository defines data access for documents, their signers and
// their content. Multi-row operations participate in the transaction found in
// the context, so services can make them atomic with TransactionManager.
type DocumentRepository interface {
	// CreateWithSigners creates the document row and all signer rows as one
	// logical unit. Fails with a not-found error when the company is unknown.
	CreateWithSigners(ctx context.Context, params CreateDocumentParams) (*models.Document, error)

	// GetWithSigners loads a document with its company, signers and content.
	GetWithSigners(ctx context.Context, id string) (*models.Document, error)

	// List returns all documents with signers loaded, newest first.
	List(ctx context.Context) ([]models.Document, error)

	// SaveFields persists only the fields named by the update.
	SaveFields(ctx context.Context, id string, upd DocumentUpdate) (*models.Document, error)

	Delete(ctx context.Context, id string) error

	// ReplaceSigners deletes the existing signer set and inserts the new one.
	ReplaceSigners(ctx context.Context, documentID string, signers []NewSigner) error

	// UpdateSignerByEmail reconciles one signer, matched case-insensitively by
	// email within the document. A miss is reported through the returned bool,
	// not an error: the provider's signer identity may legitimately not match
	// local records.
	UpdateSignerByEmail(ctx context.Context, documentID, email string, upd SignerUpdate) (matched bool, err error)

	// UpsertContent creates or replaces the document's content record,
	// clearing the inactive payload field.
	UpsertContent(ctx context.Context, documentID string, content *models.DocumentContent) (*models.DocumentContent, error)

	// GetContent returns the content record, or nil when none is defined.
	GetContent(ctx context.Context, documentID string) (*models.DocumentContent, error)

	// Report aggregates documents for the automation report.
	Report(ctx context.Context, filter ReportFilter) (*Report, error)
}
