package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-smart-tools/internal/domain"
)

// Usage store backends selectable with USAGE_STORE
const (
	UsageStoreSupabase = "supabase"
	UsageStorePostgres = "postgres"
	UsageStoreNone     = "none"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort             string
	LogLevel               string
	MaxFileSize            int64
	PDFFallbackFitz        bool
	PDFPageTimeout         time.Duration
	OCREnabled             bool
	OCRLanguage            string
	HistoryLimit           int
	UsageStore             string
	SupabaseURL            string
	SupabaseKey            string
	SupabaseServiceRoleKey string
	DatabaseURL            string
	AdminSecret            string
	CORSAllowedOrigins     []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	cfg := &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:             getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:            getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		PDFFallbackFitz:        getEnvBoolOrDefault("PDF_FALLBACK_FITZ", true),
		PDFPageTimeout:         getEnvDurationOrDefault("PDF_PAGE_TIMEOUT", 90*time.Second),
		OCREnabled:             getEnvBoolOrDefault("OCR_ENABLED", false),
		OCRLanguage:            getEnvOrDefault("OCR_LANGUAGE", "eng"),
		HistoryLimit:           getEnvIntOrDefault("HISTORY_LIMIT", 20),
		SupabaseURL:            getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:            getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseServiceRoleKey: getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		DatabaseURL:            getEnvOrDefault("DATABASE_URL", ""),
		AdminSecret:            getEnvOrDefault("ADMIN_API_SECRET", ""),
		CORSAllowedOrigins:     getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
	cfg.UsageStore = resolveUsageStore(os.Getenv("USAGE_STORE"), cfg)
	return cfg
}

// resolveUsageStore picks supabase when credentials are present and nothing
// was requested explicitly. Unknown values disable usage tracking.
func resolveUsageStore(requested string, cfg *AppConfig) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case UsageStoreSupabase:
		return UsageStoreSupabase
	case UsageStorePostgres:
		return UsageStorePostgres
	case UsageStoreNone:
		return UsageStoreNone
	case "":
		if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
			return UsageStoreSupabase
		}
		return UsageStoreNone
	default:
		return UsageStoreNone
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetPDFFallbackFitz reports whether MuPDF is tried when the primary PDF reader fails
func (c *AppConfig) GetPDFFallbackFitz() bool {
	return c.PDFFallbackFitz
}

// GetPDFPageTimeout returns the per-page extraction timeout
func (c *AppConfig) GetPDFPageTimeout() time.Duration {
	return c.PDFPageTimeout
}

// GetOCREnabled reports whether image uploads are run through OCR
func (c *AppConfig) GetOCREnabled() bool {
	return c.OCREnabled
}

// GetOCRLanguage returns the Tesseract language code
func (c *AppConfig) GetOCRLanguage() string {
	return c.OCRLanguage
}

// GetHistoryLimit returns the number of history items kept per actor
func (c *AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

// GetUsageStore returns the resolved usage store backend
func (c *AppConfig) GetUsageStore() string {
	return c.UsageStore
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseServiceRoleKey returns the Supabase service role key
func (c *AppConfig) GetSupabaseServiceRoleKey() string {
	return c.SupabaseServiceRoleKey
}

// GetDatabaseURL returns the Postgres connection string
func (c *AppConfig) GetDatabaseURL() string {
	return c.DatabaseURL
}

// GetAdminSecret returns the shared secret for admin endpoints
func (c *AppConfig) GetAdminSecret() string {
	return c.AdminSecret
}

// GetCORSAllowedOrigins returns the allowed CORS origins
func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
