package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetPDFFallbackFitz() bool
	GetPDFPageTimeout() time.Duration
	GetOCREnabled() bool
	GetOCRLanguage() string
	GetHistoryLimit() int
	GetUsageStore() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseServiceRoleKey() string
	GetDatabaseURL() string
	GetAdminSecret() string
	GetCORSAllowedOrigins() []string
}
