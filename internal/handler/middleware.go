package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pdf-smart-tools/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
)

// ClientIDHeader carries the browser-generated id of an anonymous client
const ClientIDHeader = "X-Client-ID"

// AuthMiddleware validates Supabase JWT tokens and stores the caller in the
// request context.
type AuthMiddleware struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService domain.AuthService, logger domain.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Middleware requires a valid bearer token
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		ctx, ok := m.authenticate(w, r, authHeader)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional lets anonymous callers through. Without an Authorization header
// the actor is derived from X-Client-ID in the anonymous namespace, so a
// client id can never address an authenticated user's data. A header that
// is present must still be valid.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			actor := domain.AnonymousActor(r.Header.Get(ClientIDHeader))
			next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), actor)))
			return
		}

		ctx, ok := m.authenticate(w, r, authHeader)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request, authHeader string) (context.Context, bool) {
	// Extract token from "Bearer <token>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
		return nil, false
	}

	token := parts[1]
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Token required")
		return nil, false
	}

	user, err := m.authService.ValidateToken(token)
	if err != nil {
		m.logger.Warn("Token validation failed", "error", err, "request_id", requestID(r))
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}

	ctx := context.WithValue(r.Context(), userContextKey, user)
	ctx = domain.WithActor(ctx, domain.Actor{ID: user.ID, Email: user.Email, Authenticated: true})
	return ctx, true
}

// RequestLogger logs one line per request with its status and duration
func RequestLogger(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", requestID(r),
			)
		})
	}
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
