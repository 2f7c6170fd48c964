package handler

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"pdf-smart-tools/internal/domain"
)

// multipartOverhead is allowed on top of the file size limit for the form
// boundaries and the other fields.
const multipartOverhead = 1 << 20

// ToolHandler exposes the analysis tools. Every tool takes a multipart
// upload in the "file" field.
type ToolHandler struct {
	toolService domain.ToolService
	maxFileSize int64
	logger      domain.Logger
}

// NewToolHandler creates a new tool handler
func NewToolHandler(toolService domain.ToolService, maxFileSize int64, logger domain.Logger) *ToolHandler {
	return &ToolHandler{
		toolService: toolService,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ExtractText handles POST /tools/extract-text
func (h *ToolHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	h.withUpload(w, r, func(file multipart.File, filename string) (interface{}, error) {
		return h.toolService.ExtractText(r.Context(), file, filename)
	})
}

// SmartSummary handles POST /tools/smart-summary
func (h *ToolHandler) SmartSummary(w http.ResponseWriter, r *http.Request) {
	h.withUpload(w, r, func(file multipart.File, filename string) (interface{}, error) {
		return h.toolService.SmartSummary(r.Context(), file, filename)
	})
}

// KeyPoints handles POST /tools/key-points?max=N
func (h *ToolHandler) KeyPoints(w http.ResponseWriter, r *http.Request) {
	maxPoints := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "max must be an integer")
			return
		}
		maxPoints = n
	}

	h.withUpload(w, r, func(file multipart.File, filename string) (interface{}, error) {
		return h.toolService.KeyPoints(r.Context(), file, filename, maxPoints)
	})
}

// Search handles POST /tools/search. The query is read from the "query"
// form field or the query string.
func (h *ToolHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.withUpload(w, r, func(file multipart.File, filename string) (interface{}, error) {
		query := r.FormValue("query")
		return h.toolService.Search(r.Context(), file, filename, query)
	})
}

// SuggestFileNames handles POST /tools/suggest-filename
func (h *ToolHandler) SuggestFileNames(w http.ResponseWriter, r *http.Request) {
	h.withUpload(w, r, func(file multipart.File, filename string) (interface{}, error) {
		return h.toolService.SuggestFileNames(r.Context(), file, filename)
	})
}

func (h *ToolHandler) withUpload(w http.ResponseWriter, r *http.Request, run func(file multipart.File, filename string) (interface{}, error)) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	}

	// Validate file is present
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = "document"
	}

	result, err := run(file, filename)
	if err != nil {
		writeAppError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
