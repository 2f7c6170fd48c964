package handler

import (
	"net/http"

	"pdf-smart-tools/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Routes groups the handlers served by the router
type Routes struct {
	Tools   *ToolHandler
	History *HistoryHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(routes Routes, auth *AuthMiddleware, logger domain.Logger, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	router.Use(middleware.RequestID, middleware.Recoverer, RequestLogger(logger))

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-smart-tools"})
	}).Methods(http.MethodGet)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Tools and history work for anonymous callers too
	public := api.PathPrefix("").Subrouter()
	public.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	public.Use(auth.Optional)

	public.HandleFunc("/tools/extract-text", routes.Tools.ExtractText).Methods(http.MethodPost)
	public.HandleFunc("/tools/smart-summary", routes.Tools.SmartSummary).Methods(http.MethodPost)
	public.HandleFunc("/tools/key-points", routes.Tools.KeyPoints).Methods(http.MethodPost)
	public.HandleFunc("/tools/search", routes.Tools.Search).Methods(http.MethodPost)
	public.HandleFunc("/tools/suggest-filename", routes.Tools.SuggestFileNames).Methods(http.MethodPost)

	public.HandleFunc("/history", routes.History.GetHistory).Methods(http.MethodGet)
	public.HandleFunc("/history", routes.History.ClearHistory).Methods(http.MethodDelete)
	public.HandleFunc("/history/{id}", routes.History.DeleteHistoryItem).Methods(http.MethodDelete)

	// Protected routes (require authentication)
	protected := api.PathPrefix("/auth").Subrouter()
	protected.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	protected.Use(auth.Middleware)
	protected.HandleFunc("/profile", routes.Auth.GetProfile).Methods(http.MethodGet)

	// Admin routes check X-Admin-Secret themselves
	api.HandleFunc("/admin/dashboard", routes.Admin.GetDashboard).Methods(http.MethodGet)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			ClientIDHeader,
			AdminSecretHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}

// methodNotAllowed is set on every subrouter: sibling subrouters share the
// /api/v1 matcher, which otherwise turns a method mismatch into a 404.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
