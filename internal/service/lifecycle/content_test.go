package lifecycle

import (
	"context"
	"errors"
	"testing"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
)

func TestSetContent_ValidatesPayloadPerType(t *testing.T) {
	tests := []struct {
		name    string
		content *models.DocumentContent
		wantMsg string
	}{
		{
			name:    "markdown without text",
			content: &models.DocumentContent{ContentType: models.ContentTypeMarkdown},
			wantMsg: "markdown_text is required",
		},
		{
			name:    "pdf without url",
			content: &models.DocumentContent{ContentType: models.ContentTypeURLPDF},
			wantMsg: "pdf_url is required",
		},
		{
			name:    "unknown type",
			content: &models.DocumentContent{ContentType: "docx", MarkdownText: "x"},
			wantMsg: "invalid content_type: docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := draftDocument()
			doc.Content = nil
			repo := newFakeDocumentRepo(doc)
			svc, _ := newTestService(repo, nil, nil, nil)

			_, err := svc.SetContent(context.Background(), doc.ID, tt.content)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("SetContent() error = %v, want validation error", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSetContent_StoresContent(t *testing.T) {
	doc := draftDocument()
	doc.Content = nil
	repo := newFakeDocumentRepo(doc)
	svc, _ := newTestService(repo, nil, nil, nil)

	content, err := svc.SetContent(context.Background(), doc.ID, models.NewPDFURLContent("https://files.acme.com/contract.pdf"))
	if err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	if content.DocumentID != doc.ID {
		t.Errorf("DocumentID = %q", content.DocumentID)
	}
	if content.MarkdownText != "" {
		t.Error("markdown must stay empty for pdf content")
	}
}

func TestSetContent_ClearsInactiveField(t *testing.T) {
	doc := draftDocument()
	doc.Content = nil
	repo := newFakeDocumentRepo(doc)
	svc, _ := newTestService(repo, nil, nil, nil)

	// A client may send both payload fields; only the active one survives.
	content, err := svc.SetContent(context.Background(), doc.ID, &models.DocumentContent{
		ContentType:  models.ContentTypeMarkdown,
		MarkdownText: "# Terms",
		PDFURL:       "https://files.acme.com/stale.pdf",
	})
	if err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	if content.PDFURL != "" {
		t.Errorf("PDFURL = %q, want cleared for markdown content", content.PDFURL)
	}
	if content.MarkdownText != "# Terms" {
		t.Errorf("MarkdownText = %q", content.MarkdownText)
	}

	// Switching types clears the previously active field too.
	content, err = svc.SetContent(context.Background(), doc.ID, &models.DocumentContent{
		ContentType:  models.ContentTypeURLPDF,
		MarkdownText: "# Terms",
		PDFURL:       "https://files.acme.com/contract.pdf",
	})
	if err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	if content.MarkdownText != "" {
		t.Errorf("MarkdownText = %q, want cleared for pdf content", content.MarkdownText)
	}
	if stored := repo.contents[doc.ID]; stored.MarkdownText != "" || stored.PDFURL != "https://files.acme.com/contract.pdf" {
		t.Errorf("stored content = %+v, want only the pdf payload", stored)
	}
}

func TestGetContent_NotDefined(t *testing.T) {
	doc := draftDocument()
	doc.Content = nil
	repo := newFakeDocumentRepo(doc)
	svc, _ := newTestService(repo, nil, nil, nil)

	_, err := svc.GetContent(context.Background(), doc.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetContent() error = %v, want not found", err)
	}
	if err.Error() != "content not defined" {
		t.Errorf("error = %q", err.Error())
	}
}
