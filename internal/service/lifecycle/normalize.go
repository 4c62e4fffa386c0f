package lifecycle

import (
	"strings"

	"zapflow/internal/domain/models"
)

// NormalizeDocumentStatus maps the provider's raw document status onto the
// canonical vocabulary, case-insensitively. "opened" counts as sent and
// "rejected" as canceled; an unrecognized value passes through unchanged so
// it stays visible instead of being silently discarded.
func NormalizeDocumentStatus(raw string) models.DocumentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "draft":
		return models.DocumentStatusDraft
	case "sent", "opened":
		return models.DocumentStatusSent
	case "signed":
		return models.DocumentStatusSigned
	case "canceled", "rejected":
		return models.DocumentStatusCanceled
	default:
		return models.DocumentStatus(raw)
	}
}

// NormalizeSignerStatus maps the provider's raw signer status onto the
// canonical vocabulary. Unrecognized values report ok=false and the caller
// leaves the local signer status untouched.
func NormalizeSignerStatus(raw string) (models.SignerStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return models.SignerStatusPending, true
	case "signed":
		return models.SignerStatusSigned, true
	case "rejected":
		return models.SignerStatusRejected, true
	default:
		return "", false
	}
}
