package lifecycle

import (
	"context"
	"strings"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/services"
)

// minAnalysisLength is the minimum trimmed text length worth analyzing.
const minAnalysisLength = 30

// Analyze resolves the document's text and runs the configured analyzer over
// it. Resolution order: explicit override when long enough, then stored
// markdown, then stored PDF through the text extractor.
func (s *documentService) Analyze(ctx context.Context, documentID, overrideText string) (*services.AnalysisResult, error) {
	doc, err := s.docRepo.GetWithSigners(ctx, documentID)
	if err != nil {
		return nil, err
	}

	text := normalizeWhitespace(overrideText)
	if len(text) < minAnalysisLength {
		text, err = s.resolveStoredText(ctx, doc)
		if err != nil {
			return nil, err
		}
	}

	if len(strings.TrimSpace(text)) < minAnalysisLength {
		return nil, &domain.ValidationError{Message: "insufficient text for analysis"}
	}

	return s.analyzer.Analyze(ctx, text)
}

func (s *documentService) resolveStoredText(ctx context.Context, doc *models.Document) (string, error) {
	if doc.Content == nil {
		return "", &domain.ValidationError{Message: "no content defined"}
	}

	if doc.Content.ContentType == models.ContentTypeURLPDF {
		text, err := s.pdfText.ExtractFromURL(ctx, doc.Content.PDFURL)
		if err != nil {
			return "", err
		}
		return text, nil
	}

	return doc.Content.MarkdownText, nil
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
