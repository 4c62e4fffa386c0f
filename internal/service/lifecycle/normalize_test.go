package lifecycle

import (
	"testing"

	"zapflow/internal/domain/models"
)

func TestNormalizeDocumentStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.DocumentStatus
	}{
		{"draft", models.DocumentStatusDraft},
		{"sent", models.DocumentStatusSent},
		{"opened", models.DocumentStatusSent},
		{"signed", models.DocumentStatusSigned},
		{"canceled", models.DocumentStatusCanceled},
		{"rejected", models.DocumentStatusCanceled},
		{"SIGNED", models.DocumentStatusSigned},
		{"  sent  ", models.DocumentStatusSent},
		{"expired", models.DocumentStatus("expired")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeDocumentStatus(tt.raw); got != tt.want {
				t.Errorf("NormalizeDocumentStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeSignerStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   models.SignerStatus
		wantOK bool
	}{
		{"pending", models.SignerStatusPending, true},
		{"signed", models.SignerStatusSigned, true},
		{"rejected", models.SignerStatusRejected, true},
		{"PENDING", models.SignerStatusPending, true},
		{"viewed", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeSignerStatus(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeSignerStatus(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
