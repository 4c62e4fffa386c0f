// Package pdftext fetches PDFs by URL and extracts their text.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"

	"zapflow/internal/domain/services"
)

const (
	fetchTimeout = 20 * time.Second
	maxPDFBytes  = 32 << 20
	maxPages     = 20
)

// Extractor downloads a PDF and extracts its text with MuPDF.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

// NewExtractor creates a PDF text extractor.
func NewExtractor(logger *slog.Logger) services.PDFTextExtractor {
	return &Extractor{
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// ExtractFromURL fetches the PDF and returns its cleaned text. Extraction is
// capped at maxPages; an image-only PDF yields a descriptive error.
func (e *Extractor) ExtractFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build pdf request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch pdf: %s returned %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return "", fmt.Errorf("read pdf body: %w", err)
	}

	doc, err := fitz.NewFromMemory(raw)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var lines []string
	for page := 0; page < pages; page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", page+1, err)
		}
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimRight(line, " \t"))
			}
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("no extractable text in pdf (image-only pdf?): %s", url)
	}

	e.logger.Debug("pdf text extracted", "url", url, "pages", pages, "lines", len(lines))
	return strings.Join(lines, "\n"), nil
}
