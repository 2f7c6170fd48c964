package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pdf-smart-tools/internal/analyzer"
	"pdf-smart-tools/internal/domain"
	"pdf-smart-tools/pkg/errors"
)

// SupportedExtensions lists the upload extensions the extraction service
// understands. Image formats additionally require OCR to be enabled.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".epub":     true,
	".docx":     true,
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".tif":      true,
	".tiff":     true,
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// ExtractionService implements domain.DocumentExtractor. It picks a reader
// by file extension and assembles the pages into a Document.
type ExtractionService struct {
	pdf         domain.PageTextBackend
	ocr         domain.ImageRecognizer
	maxFileSize int64
	logger      domain.Logger
}

// NewExtractionService creates a new extraction service. ocr may be nil,
// in which case image uploads are rejected.
func NewExtractionService(pdf domain.PageTextBackend, ocr domain.ImageRecognizer, maxFileSize int64, logger domain.Logger) *ExtractionService {
	return &ExtractionService{
		pdf:         pdf,
		ocr:         ocr,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Extract reads the upload and returns its Document
func (s *ExtractionService) Extract(ctx context.Context, file io.Reader, filename string) (*domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !SupportedExtensions[ext] {
		return nil, errors.NewValidationError(domain.ErrUnsupportedFormat.Error(), fmt.Sprintf("extension %q", ext))
	}
	if imageExtensions[ext] && s.ocr == nil {
		return nil, errors.NewValidationError(domain.ErrOCRDisabled.Error(), "image uploads require OCR_ENABLED=true")
	}

	data, err := s.readLimited(file)
	if err != nil {
		return nil, err
	}

	pages, meta, err := s.extractPages(ctx, ext, data)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("Failed to extract document", err, "file", filename, "format", ext)
		return nil, errors.NewProcessingError("failed to extract text from "+strings.TrimPrefix(ext, ".")+" file", err)
	}

	meta.Format = strings.TrimPrefix(ext, ".")
	meta.FileSize = int64(len(data))
	meta.Title = sanitizeText(meta.Title)

	doc := analyzer.AssembleDocument(sanitizePages(pages), meta)
	s.logger.Debug("Document extracted", "file", filename, "format", meta.Format, "pages", doc.TotalPages)
	return doc, nil
}

func (s *ExtractionService) readLimited(file io.Reader) ([]byte, error) {
	reader := file
	if s.maxFileSize > 0 {
		reader = io.LimitReader(file, s.maxFileSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewProcessingError("failed to read file", err)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, errors.NewTooLargeError(domain.ErrFileTooLarge.Error(), s.maxFileSize)
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError(domain.ErrEmptyFile.Error())
	}
	return data, nil
}

func (s *ExtractionService) extractPages(ctx context.Context, ext string, data []byte) ([][]string, domain.DocumentMetadata, error) {
	switch ext {
	case ".pdf":
		if s.pdf == nil {
			return nil, domain.DocumentMetadata{}, stderrors.New("no PDF backend configured")
		}
		return s.pdf.ExtractPages(ctx, data)
	case ".txt":
		return extractPlainText(data), domain.DocumentMetadata{}, nil
	case ".md", ".markdown":
		return extractMarkdown(data), domain.DocumentMetadata{}, nil
	case ".html", ".htm":
		pages, meta := extractHTML(data)
		return pages, meta, nil
	case ".epub":
		return extractEPUB(data)
	case ".docx":
		pages, err := extractDOCX(data)
		return pages, domain.DocumentMetadata{}, err
	default:
		text, err := s.ocr.RecognizeImage(data)
		if err != nil {
			return nil, domain.DocumentMetadata{}, err
		}
		return [][]string{analyzer.SplitLines(text)}, domain.DocumentMetadata{}, nil
	}
}
