package lifecycle

import (
	"context"
	"fmt"
	"strconv"

	"zapflow/internal/domain"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/domain/services"
)

// SyncStatus polls the provider for a document's remote state and reconciles
// it into local state. Unlike Send, gateway failures here are translated into
// the use-case's own vocabulary: a polling failure is reported as a
// validation issue, not a raw transport error.
func (s *documentService) SyncStatus(ctx context.Context, documentID string) (*services.StatusReport, error) {
	doc, err := s.docRepo.GetWithSigners(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.Company == nil || doc.Company.APIToken == "" {
		return nil, &domain.ValidationError{Message: "company has no api token configured"}
	}
	if doc.Token == "" && doc.OpenID == 0 {
		return nil, &domain.ValidationError{Message: "document has no remote identifiers"}
	}

	remoteID := doc.Token
	if remoteID == "" {
		remoteID = strconv.FormatInt(doc.OpenID, 10)
	}

	resp, err := s.gateway.GetStatus(ctx, doc.Company.APIToken, remoteID)
	if err != nil {
		s.logger.Error("provider status lookup failed", "document_id", documentID, "error", err)
		return nil, &domain.ValidationError{Message: fmt.Sprintf("status lookup failed: %v", err)}
	}

	raw := resp.Status()
	if raw == "" {
		raw = string(doc.Status)
	}
	status := NormalizeDocumentStatus(raw)

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if status != doc.Status {
			if _, err := s.docRepo.SaveFields(txCtx, doc.ID, repositories.DocumentUpdate{Status: &status}); err != nil {
				return err
			}
		}

		for _, remote := range resp.Signers() {
			if remote.Email == "" {
				continue
			}
			upd := repositories.SignerUpdate{}
			if signerStatus, ok := NormalizeSignerStatus(remote.Status); ok {
				upd.Status = &signerStatus
			}
			if remote.Token != "" {
				token := remote.Token
				upd.Token = &token
			}
			if upd.Status == nil && upd.Token == nil {
				continue
			}
			// Reconciliation is keyed by email; a miss is intentionally a
			// no-op so a provider-side identity mismatch never fails the sync.
			if _, err := s.docRepo.UpdateSignerByEmail(txCtx, doc.ID, remote.Email, upd); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &services.StatusReport{
		DocumentID: doc.ID,
		Status:     status,
		Raw:        resp,
	}, nil
}
