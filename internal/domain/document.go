package domain

import (
	"context"
	"io"
)

// TextFragment is a run of text as reported by a positional extractor.
// Y is the baseline in page units; larger values are higher on the page
// for PDF sources, but only differences between fragments matter.
// W is the advance width of the run and FontSize its rendered size; both
// are zero when the extractor does not report glyph geometry.
type TextFragment struct {
	Text     string
	X        float64
	Y        float64
	W        float64
	FontSize float64
}

// Page represents one page of an extracted document.
type Page struct {
	PageNumber int      `json:"page_number"`
	Text       string   `json:"text"`
	Lines      []string `json:"lines"`
}

// DocumentMetadata holds optional metadata embedded in the source file.
type DocumentMetadata struct {
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Keywords     string `json:"keywords,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	Format       string `json:"format,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// Document is the request-scoped result of text extraction. It is built once
// per tool invocation and treated as read-only afterwards.
type Document struct {
	TotalPages int              `json:"total_pages"`
	Pages      []Page           `json:"pages"`
	FullText   string           `json:"full_text"`
	Title      string           `json:"title"`
	Metadata   DocumentMetadata `json:"metadata"`
}

// DocumentExtractor turns an uploaded file into a Document.
type DocumentExtractor interface {
	Extract(ctx context.Context, file io.Reader, filename string) (*Document, error)
}

// PageTextBackend extracts ordered line lists per page from raw PDF bytes.
type PageTextBackend interface {
	Name() string
	ExtractPages(ctx context.Context, pdfBytes []byte) ([][]string, DocumentMetadata, error)
}

// ImageRecognizer performs OCR on a single image.
type ImageRecognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}
