package models

// ContentType tags the single active payload of a DocumentContent.
type ContentType string

const (
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeURLPDF   ContentType = "url_pdf"
)

// DocumentContent is the one-to-one content record of a document. The two
// payload fields are mutually exclusive: ContentType names the active one and
// the other is always empty. Use the constructors to keep that invariant.
type DocumentContent struct {
	DocumentID   string      `json:"document_id" db:"document_id"`
	ContentType  ContentType `json:"content_type" db:"content_type"`
	MarkdownText string      `json:"markdown_text" db:"markdown_text"`
	PDFURL       string      `json:"pdf_url" db:"pdf_url"`
}

// NewMarkdownContent builds a markdown content record with the PDF field
// cleared.
func NewMarkdownContent(text string) *DocumentContent {
	return &DocumentContent{ContentType: ContentTypeMarkdown, MarkdownText: text}
}

// NewPDFURLContent builds a PDF-by-URL content record with the markdown field
// cleared.
func NewPDFURLContent(url string) *DocumentContent {
	return &DocumentContent{ContentType: ContentTypeURLPDF, PDFURL: url}
}

// Body returns the active payload.
func (c *DocumentContent) Body() string {
	if c.ContentType == ContentTypeURLPDF {
		return c.PDFURL
	}
	return c.MarkdownText
}
