package lifecycle

import (
	"context"
	"errors"
	"testing"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/services"
)

func TestSend_OnlyDraftsCanBeSent(t *testing.T) {
	for _, status := range []models.DocumentStatus{
		models.DocumentStatusSent,
		models.DocumentStatusSigned,
		models.DocumentStatusCanceled,
	} {
		t.Run(string(status), func(t *testing.T) {
			doc := draftDocument()
			doc.Status = status
			repo := newFakeDocumentRepo(doc)
			gateway := &fakeGateway{}
			svc, _ := newTestService(repo, gateway, nil, nil)

			_, err := svc.Send(context.Background(), doc.ID)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Send() error = %v, want validation error", err)
			}
			if gateway.createCalls != 0 {
				t.Error("provider must not be called for non-draft documents")
			}
		})
	}
}

func TestSend_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Document)
		wantMsg string
	}{
		{
			name:    "no api token",
			mutate:  func(d *models.Document) { d.Company.APIToken = "" },
			wantMsg: "company has no api token configured",
		},
		{
			name:    "no signers",
			mutate:  func(d *models.Document) { d.Signers = nil },
			wantMsg: "document has no signers",
		},
		{
			name:    "no content",
			mutate:  func(d *models.Document) { d.Content = nil },
			wantMsg: "content not defined",
		},
		{
			name:    "empty markdown",
			mutate:  func(d *models.Document) { d.Content = models.NewMarkdownContent("") },
			wantMsg: "markdown_text is empty",
		},
		{
			name:    "empty pdf url",
			mutate:  func(d *models.Document) { d.Content = models.NewPDFURLContent("") },
			wantMsg: "pdf_url is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := draftDocument()
			tt.mutate(doc)
			repo := newFakeDocumentRepo(doc)
			gateway := &fakeGateway{}
			svc, _ := newTestService(repo, gateway, nil, nil)

			_, err := svc.Send(context.Background(), doc.ID)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Send() error = %v, want validation error", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if gateway.createCalls != 0 {
				t.Error("provider must not be called when a precondition fails")
			}
		})
	}
}

func TestSend_AbsorbsProviderResponse(t *testing.T) {
	doc := draftDocument()
	repo := newFakeDocumentRepo(doc)
	gateway := &fakeGateway{
		createResp: services.ProviderResponse{
			"open_id": float64(999),
			"token":   "t",
			"status":  "sent",
			"signers": []interface{}{
				map[string]interface{}{"email": "ana@acme.com", "token": "st", "status": "pending"},
			},
		},
	}
	svc, tx := newTestService(repo, gateway, nil, nil)

	sent, err := svc.Send(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if sent.OpenID != 999 {
		t.Errorf("OpenID = %d, want 999", sent.OpenID)
	}
	if sent.Token != "t" {
		t.Errorf("Token = %q, want %q", sent.Token, "t")
	}
	if sent.Status != models.DocumentStatusSent {
		t.Errorf("Status = %q, want sent", sent.Status)
	}
	if sent.Signers[0].Token != "st" {
		t.Errorf("signer token = %q, want %q", sent.Signers[0].Token, "st")
	}
	if tx.calls != 1 {
		t.Errorf("ExecTx calls = %d, want 1", tx.calls)
	}

	if gateway.lastCreateReq.MarkdownText == "" {
		t.Error("markdown content should be forwarded to the provider")
	}
	if gateway.lastCreateReq.Signers[0].Email != "ana@acme.com" {
		t.Errorf("forwarded signer email = %q", gateway.lastCreateReq.Signers[0].Email)
	}
}

func TestSend_DefaultsStatusToSent(t *testing.T) {
	doc := draftDocument()
	repo := newFakeDocumentRepo(doc)
	gateway := &fakeGateway{
		createResp: services.ProviderResponse{"open_id": float64(123), "token": "t"},
	}
	svc, _ := newTestService(repo, gateway, nil, nil)

	sent, err := svc.Send(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sent.Status != models.DocumentStatusSent {
		t.Errorf("Status = %q, want sent when the provider omits it", sent.Status)
	}
}

func TestSend_ForwardsPDFURL(t *testing.T) {
	doc := draftDocument()
	doc.Content = models.NewPDFURLContent("https://files.acme.com/contract.pdf")
	repo := newFakeDocumentRepo(doc)
	gateway := &fakeGateway{
		createResp: services.ProviderResponse{"open_id": float64(1), "token": "t", "status": "sent"},
	}
	svc, _ := newTestService(repo, gateway, nil, nil)

	if _, err := svc.Send(context.Background(), doc.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gateway.lastCreateReq.PDFURL != "https://files.acme.com/contract.pdf" {
		t.Errorf("PDFURL = %q", gateway.lastCreateReq.PDFURL)
	}
	if gateway.lastCreateReq.MarkdownText != "" {
		t.Error("markdown must be empty for pdf content")
	}
}

func TestSend_ProviderErrorPropagatesUnmodified(t *testing.T) {
	doc := draftDocument()
	repo := newFakeDocumentRepo(doc)
	gateway := &fakeGateway{
		createErr: &domain.ExternalServiceError{Status: 503, Body: "upstream down"},
	}
	svc, _ := newTestService(repo, gateway, nil, nil)

	_, err := svc.Send(context.Background(), doc.ID)

	var providerErr *domain.ExternalServiceError
	if !errors.As(err, &providerErr) {
		t.Fatalf("Send() error = %v, want ExternalServiceError", err)
	}
	if providerErr.Status != 503 {
		t.Errorf("Status = %d, want 503", providerErr.Status)
	}
	if repo.saveFieldsCalls != 0 {
		t.Error("nothing must be persisted when the provider call fails")
	}
}

func TestSend_SkipsSignerEntriesWithoutEmailOrToken(t *testing.T) {
	doc := draftDocument()
	repo := newFakeDocumentRepo(doc)
	gateway := &fakeGateway{
		createResp: services.ProviderResponse{
			"open_id": float64(1),
			"token":   "t",
			"status":  "sent",
			"signers": []interface{}{
				map[string]interface{}{"email": "", "token": "x"},
				map[string]interface{}{"email": "ana@acme.com", "token": ""},
			},
		},
	}
	svc, _ := newTestService(repo, gateway, nil, nil)

	if _, err := svc.Send(context.Background(), doc.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(repo.signerUpdates) != 0 {
		t.Errorf("signer updates = %d, want 0", len(repo.signerUpdates))
	}
}
