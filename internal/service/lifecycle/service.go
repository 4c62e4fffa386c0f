// Package lifecycle implements the document lifecycle engine: creation,
// content management, provider hand-off, remote status synchronization and
// text analysis. Each use-case reads current entity state, performs at most
// one outbound call and writes the reconciled result back; nothing in this
// package holds state between invocations.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/domain/services"
)

type documentService struct {
	docRepo   repositories.DocumentRepository
	txManager repositories.TransactionManager
	gateway   services.SignatureGateway
	analyzer  services.TextAnalyzer
	pdfText   services.PDFTextExtractor
	logger    *slog.Logger
}

// NewDocumentService creates the lifecycle engine.
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	gateway services.SignatureGateway,
	analyzer services.TextAnalyzer,
	pdfText services.PDFTextExtractor,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		txManager: txManager,
		gateway:   gateway,
		analyzer:  analyzer,
		pdfText:   pdfText,
		logger:    logger,
	}
}

// Create validates and normalizes the request, then creates the document
// with its signers in one transaction. The resulting document is a draft
// with no remote identifiers and no content.
func (s *documentService) Create(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.CreatedBy = strings.TrimSpace(req.CreatedBy)
	req.ExternalID = strings.TrimSpace(req.ExternalID)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	signers, err := normalizeSigners(req.Signers)
	if err != nil {
		return nil, err
	}

	var doc *models.Document
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		created, err := s.docRepo.CreateWithSigners(txCtx, repositories.CreateDocumentParams{
			CompanyID:  req.CompanyID,
			Name:       req.Name,
			CreatedBy:  req.CreatedBy,
			ExternalID: req.ExternalID,
			Signers:    signers,
		})
		if err != nil {
			return err
		}
		doc = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"company_id", doc.CompanyID,
		"signers", len(doc.Signers),
	)
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetWithSigners(ctx, id)
}

func (s *documentService) List(ctx context.Context) ([]models.Document, error) {
	return s.docRepo.List(ctx)
}

// Update applies simple-field changes and, when a signer list is supplied,
// replaces the whole signer set. An empty replacement set is rejected so a
// document always keeps at least one signer.
func (s *documentService) Update(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if _, err := s.docRepo.GetWithSigners(ctx, id); err != nil {
		return nil, err
	}

	upd := repositories.DocumentUpdate{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &domain.ValidationError{Message: "document name is required"}
		}
		upd.Name = &name
	}
	if req.CreatedBy != nil {
		createdBy := strings.TrimSpace(*req.CreatedBy)
		upd.CreatedBy = &createdBy
	}
	if req.ExternalID != nil {
		externalID := strings.TrimSpace(*req.ExternalID)
		upd.ExternalID = &externalID
	}

	var signers []repositories.NewSigner
	if req.Signers != nil {
		if len(*req.Signers) == 0 {
			return nil, &domain.ValidationError{Message: "signer replacement cannot be empty"}
		}
		normalized, err := normalizeSigners(*req.Signers)
		if err != nil {
			return nil, err
		}
		signers = normalized
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.docRepo.SaveFields(txCtx, id, upd); err != nil {
			return err
		}
		if signers != nil {
			return s.docRepo.ReplaceSigners(txCtx, id, signers)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.docRepo.GetWithSigners(ctx, id)
}

// Delete removes a document unless it has been signed.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetWithSigners(ctx, id)
	if err != nil {
		return err
	}
	if doc.Status == models.DocumentStatusSigned {
		return &domain.ValidationError{Message: "signed documents cannot be deleted"}
	}
	return s.docRepo.Delete(ctx, id)
}

func (s *documentService) SetContent(ctx context.Context, documentID string, content *models.DocumentContent) (*models.DocumentContent, error) {
	if _, err := s.docRepo.GetWithSigners(ctx, documentID); err != nil {
		return nil, err
	}

	// Rebuild through the constructors so the inactive payload field is
	// always cleared, whatever the caller supplied.
	switch content.ContentType {
	case models.ContentTypeMarkdown:
		if strings.TrimSpace(content.MarkdownText) == "" {
			return nil, &domain.ValidationError{Message: "markdown_text is required"}
		}
		content = models.NewMarkdownContent(content.MarkdownText)
	case models.ContentTypeURLPDF:
		if strings.TrimSpace(content.PDFURL) == "" {
			return nil, &domain.ValidationError{Message: "pdf_url is required"}
		}
		content = models.NewPDFURLContent(content.PDFURL)
	default:
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid content_type: %s", content.ContentType)}
	}

	return s.docRepo.UpsertContent(ctx, documentID, content)
}

func (s *documentService) GetContent(ctx context.Context, documentID string) (*models.DocumentContent, error) {
	if _, err := s.docRepo.GetWithSigners(ctx, documentID); err != nil {
		return nil, err
	}

	content, err := s.docRepo.GetContent(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, &domain.NotFoundError{Message: "content not defined"}
	}
	return content, nil
}

func (s *documentService) Report(ctx context.Context, filter repositories.ReportFilter) (*repositories.Report, error) {
	return s.docRepo.Report(ctx, filter)
}

func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required.Error("document name is required")),
		validation.Field(&req.CompanyID, validation.Required.Error("company id is required")),
		validation.Field(&req.Signers, validation.Required.Error("at least one signer is required")),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

// normalizeSigners trims all fields, lower-cases emails and rejects
// case-insensitive duplicates, reporting the first one found.
func normalizeSigners(inputs []services.SignerInput) ([]repositories.NewSigner, error) {
	signers := make([]repositories.NewSigner, 0, len(inputs))
	seen := map[string]bool{}
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if name == "" || email == "" {
			return nil, &domain.ValidationError{Message: "every signer needs a name and an email"}
		}
		if seen[email] {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("duplicate signer email: %s", email)}
		}
		seen[email] = true
		signers = append(signers, repositories.NewSigner{
			Name:       name,
			Email:      email,
			ExternalID: strings.TrimSpace(in.ExternalID),
		})
	}
	return signers, nil
}
