package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pdf-smart-tools/internal/analyzer"
	"pdf-smart-tools/internal/domain"

	"github.com/gen2brain/go-fitz"
	pdflib "github.com/ledongthuc/pdf"
)

const defaultPageTimeout = 90 * time.Second

var (
	errNoText      = errors.New("no extractable text")
	errPageTimeout = errors.New("page extraction timed out")
)

// pageResult carries the lines of a single page out of the worker goroutine.
type pageResult struct {
	lines []string
	err   error
}

// extractPageWithTimeout runs extract in its own goroutine and gives up after
// timeout. A panic inside the PDF library is reported as an error.
func extractPageWithTimeout(ctx context.Context, timeout time.Duration, extract func() ([]string, error)) ([]string, error) {
	resultCh := make(chan pageResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- pageResult{err: fmt.Errorf("page extraction panicked: %v", r)}
			}
		}()
		lines, err := extract()
		resultCh <- pageResult{lines: lines, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return res.lines, res.err
	case <-timer.C:
		return nil, fmt.Errorf("%w after %v", errPageTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LedongthucBackend reads positioned text fragments with ledongthuc/pdf and
// groups them into lines by their vertical position.
type LedongthucBackend struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewLedongthucBackend creates the positional PDF backend
func NewLedongthucBackend(logger domain.Logger, pageTimeout time.Duration) *LedongthucBackend {
	if pageTimeout <= 0 {
		pageTimeout = defaultPageTimeout
	}
	return &LedongthucBackend{logger: logger, pageTimeout: pageTimeout}
}

func (b *LedongthucBackend) Name() string { return "ledongthuc" }

// ExtractPages returns one line list per page. Pages that fail or time out
// are kept as empty pages so page numbering stays aligned with the file.
func (b *LedongthucBackend) ExtractPages(ctx context.Context, pdfBytes []byte) (pages [][]string, meta domain.DocumentMetadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, meta, fmt.Errorf("failed to open PDF: %w", err)
	}

	meta = ledongthucMetadata(reader)

	numPages := reader.NumPage()
	pages = make([][]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, meta, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, []string{})
			continue
		}

		lines, err := extractPageWithTimeout(ctx, b.pageTimeout, func() ([]string, error) {
			return analyzer.GroupLines(pageFragments(page.Content().Text)), nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, meta, ctx.Err()
			}
			b.logger.Warn("Failed to extract text from page", "backend", b.Name(), "page", i, "total", numPages, "error", err)
			lines = []string{}
		}
		pages = append(pages, lines)
	}

	return pages, meta, nil
}

// pageFragments converts ledongthuc glyphs to fragments. The library ends
// every TJ array with a newline glyph; it is kept as a plain space so runs
// drawn by separate operators on one baseline stay apart.
func pageFragments(texts []pdflib.Text) []domain.TextFragment {
	fragments := make([]domain.TextFragment, 0, len(texts))
	for _, t := range texts {
		s := t.S
		if s == "\n" || s == "\r" {
			s = " "
		}
		fragments = append(fragments, domain.TextFragment{
			Text:     s,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			FontSize: t.FontSize,
		})
	}
	return fragments
}

func ledongthucMetadata(reader *pdflib.Reader) domain.DocumentMetadata {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return domain.DocumentMetadata{}
	}
	return domain.DocumentMetadata{
		Title:        strings.TrimSpace(info.Key("Title").Text()),
		Author:       strings.TrimSpace(info.Key("Author").Text()),
		Subject:      strings.TrimSpace(info.Key("Subject").Text()),
		Keywords:     strings.TrimSpace(info.Key("Keywords").Text()),
		CreationDate: strings.TrimSpace(info.Key("CreationDate").Text()),
	}
}

// FitzBackend extracts page text with MuPDF. Line positions are not exposed,
// so page text is split on the newlines MuPDF emits.
type FitzBackend struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewFitzBackend creates the MuPDF backend
func NewFitzBackend(logger domain.Logger, pageTimeout time.Duration) *FitzBackend {
	if pageTimeout <= 0 {
		pageTimeout = defaultPageTimeout
	}
	return &FitzBackend{logger: logger, pageTimeout: pageTimeout}
}

func (b *FitzBackend) Name() string { return "fitz" }

func (b *FitzBackend) ExtractPages(ctx context.Context, pdfBytes []byte) ([][]string, domain.DocumentMetadata, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, domain.DocumentMetadata{}, fmt.Errorf("failed to open PDF: %w", err)
	}

	docMetadata := doc.Metadata()
	meta := domain.DocumentMetadata{
		Title:        strings.TrimSpace(docMetadata["title"]),
		Author:       strings.TrimSpace(docMetadata["author"]),
		Subject:      strings.TrimSpace(docMetadata["subject"]),
		Keywords:     strings.TrimSpace(docMetadata["keywords"]),
		CreationDate: strings.TrimSpace(docMetadata["creationDate"]),
	}

	pages, stuck, err := b.extractPages(ctx, doc.NumPage(), doc.Text)
	if stuck {
		// The timed out Text call still holds the document lock
		go doc.Close()
	} else {
		doc.Close()
	}
	if err != nil {
		return nil, meta, err
	}
	return pages, meta, nil
}

// extractPages reads numPages pages with pageText. go-fitz serializes calls
// on one document, so after a page times out every later page would wait on
// it: the remaining pages are returned empty and stuck is reported.
func (b *FitzBackend) extractPages(ctx context.Context, numPages int, pageText func(int) (string, error)) (pages [][]string, stuck bool, err error) {
	pages = make([][]string, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, stuck, err
		}
		if stuck {
			pages = append(pages, []string{})
			continue
		}

		b.logger.Debug("PDF processing page", "backend", b.Name(), "page", pageNum+1, "total", numPages)
		idx := pageNum
		lines, err := extractPageWithTimeout(ctx, b.pageTimeout, func() ([]string, error) {
			text, err := pageText(idx)
			if err != nil {
				return nil, err
			}
			return analyzer.SplitLines(text), nil
		})
		if err != nil {
			if ctx.Err() != nil {
				// The abandoned page may still be running
				return nil, true, ctx.Err()
			}
			if errors.Is(err, errPageTimeout) {
				stuck = true
				b.logger.Warn("PDF page timed out, skipping remaining pages", "backend", b.Name(), "page", pageNum+1, "total", numPages)
			} else {
				b.logger.Warn("Failed to extract text from page", "backend", b.Name(), "page", pageNum+1, "total", numPages, "error", err)
			}
			lines = []string{}
		}
		pages = append(pages, lines)
	}

	return pages, stuck, nil
}

// PDFProcessor tries each backend in order. A backend that fails, or that
// finds no text on any page, hands over to the next one.
type PDFProcessor struct {
	backends []domain.PageTextBackend
	logger   domain.Logger
}

var _ domain.PageTextBackend = (*PDFProcessor)(nil)

// NewPDFProcessor creates a processor over the given backends
func NewPDFProcessor(logger domain.Logger, backends ...domain.PageTextBackend) *PDFProcessor {
	return &PDFProcessor{backends: backends, logger: logger}
}

// Name lists the backends in the order they are tried
func (p *PDFProcessor) Name() string {
	names := make([]string, 0, len(p.backends))
	for _, backend := range p.backends {
		names = append(names, backend.Name())
	}
	return strings.Join(names, ",")
}

// ExtractPages returns the pages of the first backend that produced text.
// When every backend runs but none finds text, the last result is returned
// so that scanned documents still report their page count.
func (p *PDFProcessor) ExtractPages(ctx context.Context, pdfBytes []byte) ([][]string, domain.DocumentMetadata, error) {
	var (
		lastPages [][]string
		lastMeta  domain.DocumentMetadata
		haveEmpty bool
		errs      []error
	)

	for _, backend := range p.backends {
		pages, meta, err := backend.ExtractPages(ctx, pdfBytes)
		if err != nil {
			if ctx.Err() != nil {
				return nil, domain.DocumentMetadata{}, ctx.Err()
			}
			p.logger.Warn("PDF backend failed", "backend", backend.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
			continue
		}
		if hasText(pages) {
			if haveEmpty {
				meta = mergeMetadata(meta, lastMeta)
			}
			p.logger.Debug("PDF extracted", "backend", backend.Name(), "pages", len(pages))
			return pages, meta, nil
		}
		p.logger.Debug("PDF backend found no text", "backend", backend.Name(), "pages", len(pages))
		lastPages, lastMeta, haveEmpty = pages, meta, true
	}

	if haveEmpty {
		return lastPages, lastMeta, nil
	}
	if len(errs) == 0 {
		errs = append(errs, errNoText)
	}
	return nil, domain.DocumentMetadata{}, errors.Join(errs...)
}

func hasText(pages [][]string) bool {
	for _, lines := range pages {
		if len(lines) > 0 {
			return true
		}
	}
	return false
}

// mergeMetadata fills the empty fields of primary from secondary
func mergeMetadata(primary, secondary domain.DocumentMetadata) domain.DocumentMetadata {
	if primary.Title == "" {
		primary.Title = secondary.Title
	}
	if primary.Author == "" {
		primary.Author = secondary.Author
	}
	if primary.Subject == "" {
		primary.Subject = secondary.Subject
	}
	if primary.Keywords == "" {
		primary.Keywords = secondary.Keywords
	}
	if primary.CreationDate == "" {
		primary.CreationDate = secondary.CreationDate
	}
	return primary
}
