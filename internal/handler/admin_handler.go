package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"pdf-smart-tools/internal/domain"
)

// AdminSecretHeader must match ADMIN_API_SECRET on admin endpoints
const AdminSecretHeader = "X-Admin-Secret"

// AdminHandler exposes admin-only endpoints protected by X-Admin-Secret.
// These endpoints are intended for internal use (support tooling) and should not be exposed publicly without additional safeguards.
type AdminHandler struct {
	adminService domain.AdminService
	secret       string
	logger       domain.Logger
}

// NewAdminHandler creates a new admin handler. An empty secret rejects every
// request.
func NewAdminHandler(adminService domain.AdminService, secret string, logger domain.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		secret:       secret,
		logger:       logger,
	}
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	secret := r.Header.Get(AdminSecretHeader)
	return h.secret != "" && secret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) == 1
}

// GetDashboard returns users, usage statistics and recent activity.
//
// Auth: requires `X-Admin-Secret` header matching env `ADMIN_API_SECRET`.
func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dashboard, err := h.adminService.Dashboard(r.Context())
	if errors.Is(err, domain.ErrUsageStoreDisabled) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Failed to build admin dashboard", err, "request_id", requestID(r))
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
