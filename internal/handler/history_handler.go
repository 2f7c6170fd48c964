package handler

import (
	"net/http"

	"pdf-smart-tools/internal/domain"

	"github.com/gorilla/mux"
)

// HistoryHandler serves the caller's recently used tools
type HistoryHandler struct {
	historyService domain.HistoryService
	logger         domain.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService domain.HistoryService, logger domain.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// GetHistory returns the history, newest first
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.historyService.List(r.Context())
	if err != nil {
		writeAppError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// DeleteHistoryItem removes one entry
func (h *HistoryHandler) DeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.historyService.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory removes every entry
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.historyService.Clear(r.Context()); err != nil {
		writeAppError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
