package services

import "context"

// Extraction holds the pattern-matched entities found in document text.
type Extraction struct {
	Emails  []string `json:"emails"`
	Amounts []string `json:"money"`
	CPF     []string `json:"cpf"`
	CNPJ    []string `json:"cnpj"`
}

// AnalysisResult is the outcome of running text analysis over a document.
type AnalysisResult struct {
	Summary   string     `json:"summary"`
	Topics    []string   `json:"topics"`
	RiskScore int        `json:"risk_score"`
	Extracted Extraction `json:"extracted"`
	Flags     []string   `json:"flags"`
}

// TextAnalyzer produces an analysis over plain document text.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (*AnalysisResult, error)
}

// PDFTextExtractor fetches a PDF by URL and extracts its text.
type PDFTextExtractor interface {
	ExtractFromURL(ctx context.Context, url string) (string, error)
}
