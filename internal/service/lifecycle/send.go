package lifecycle

import (
	"context"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/domain/services"
)

// Send hands a draft document to the signature provider. Preconditions are
// checked against freshly loaded state; a provider failure propagates
// unmodified (the API layer decides how to present it); on success the
// provider response is absorbed into local state in one transaction.
func (s *documentService) Send(ctx context.Context, documentID string) (*models.Document, error) {
	doc, err := s.docRepo.GetWithSigners(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.Status != models.DocumentStatusDraft {
		return nil, &domain.ValidationError{Message: "only draft documents can be sent"}
	}
	if doc.Company == nil || doc.Company.APIToken == "" {
		return nil, &domain.ValidationError{Message: "company has no api token configured"}
	}
	if len(doc.Signers) == 0 {
		return nil, &domain.ValidationError{Message: "document has no signers"}
	}
	if doc.Content == nil {
		return nil, &domain.ValidationError{Message: "content not defined"}
	}

	req := &services.RemoteCreateRequest{Name: doc.Name}
	switch doc.Content.ContentType {
	case models.ContentTypeURLPDF:
		if doc.Content.PDFURL == "" {
			return nil, &domain.ValidationError{Message: "pdf_url is empty"}
		}
		req.PDFURL = doc.Content.PDFURL
	default:
		if doc.Content.MarkdownText == "" {
			return nil, &domain.ValidationError{Message: "markdown_text is empty"}
		}
		req.MarkdownText = doc.Content.MarkdownText
	}
	for _, signer := range doc.Signers {
		req.Signers = append(req.Signers, services.RemoteSigner{Name: signer.Name, Email: signer.Email})
	}

	resp, err := s.gateway.CreateDocument(ctx, doc.Company.APIToken, req)
	if err != nil {
		return nil, err
	}

	openID := resp.OpenID()
	token := resp.Token()
	status := NormalizeDocumentStatus(resp.Status())
	if resp.Status() == "" {
		status = models.DocumentStatusSent
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.docRepo.SaveFields(txCtx, doc.ID, repositories.DocumentUpdate{
			OpenID: &openID,
			Token:  &token,
			Status: &status,
		}); err != nil {
			return err
		}

		for _, remote := range resp.Signers() {
			if remote.Email == "" || remote.Token == "" {
				continue
			}
			upd := repositories.SignerUpdate{Token: &remote.Token}
			if signerStatus, ok := NormalizeSignerStatus(remote.Status); ok {
				upd.Status = &signerStatus
			}
			// A miss is deliberate no-op: the provider may report signers we
			// do not track.
			if _, err := s.docRepo.UpdateSignerByEmail(txCtx, doc.ID, remote.Email, upd); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document sent to provider",
		"document_id", doc.ID,
		"open_id", openID,
		"status", status,
	)
	return s.docRepo.GetWithSigners(ctx, doc.ID)
}
