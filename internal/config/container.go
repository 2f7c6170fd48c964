package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pdf-smart-tools/internal/domain"
	"pdf-smart-tools/internal/repository"
	"pdf-smart-tools/internal/service"
	"pdf-smart-tools/pkg/logger"
)

const dbConnectTimeout = 10 * time.Second

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient

	UsageRepository   domain.UsageRepository
	HistoryRepository domain.HistoryRepository

	DocumentExtractor domain.DocumentExtractor
	ToolService       domain.ToolService
	HistoryService    domain.HistoryService
	AdminService      domain.AdminService
	AuthService       domain.AuthService

	db  *sql.DB
	ocr *service.OCRProcessor
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	return NewContainerWithConfig(config, logger.NewLogger(config.GetLogLevel()))
}

// NewContainerWithConfig wires every service from the given configuration.
// Optional backends (Supabase, Postgres, OCR) are disabled with a warning
// when they cannot be set up; only an explicitly requested Postgres store
// that cannot be reached is an error.
func NewContainerWithConfig(config domain.Config, appLogger domain.Logger) (*Container, error) {
	c := &Container{
		Config: config,
		Logger: appLogger,
	}

	// Initialize Supabase client
	c.SupabaseClient = repository.NewSupabaseClient(config, appLogger)
	supabaseReady := true
	if err := c.SupabaseClient.Initialize(); err != nil {
		supabaseReady = false
		appLogger.Warn("Supabase is not configured, authentication is disabled", "error", err)
	}

	// Initialize repositories
	if err := c.initUsageRepository(supabaseReady); err != nil {
		return nil, err
	}
	c.HistoryRepository = repository.NewMemoryHistoryRepository()

	// Extraction
	pageTimeout := config.GetPDFPageTimeout()
	backends := []domain.PageTextBackend{service.NewLedongthucBackend(appLogger, pageTimeout)}
	if config.GetPDFFallbackFitz() {
		backends = append(backends, service.NewFitzBackend(appLogger, pageTimeout))
	}
	pdfProcessor := service.NewPDFProcessor(appLogger, backends...)

	var recognizer domain.ImageRecognizer
	if config.GetOCREnabled() {
		ocr, err := service.NewOCRProcessor(config.GetOCRLanguage())
		if err != nil {
			appLogger.Warn("OCR could not be started, image uploads are disabled", "error", err)
		} else {
			c.ocr = ocr
			recognizer = ocr
		}
	}
	c.DocumentExtractor = service.NewExtractionService(pdfProcessor, recognizer, config.GetMaxFileSize(), appLogger)

	// Services
	historyService := service.NewHistoryService(c.HistoryRepository, config.GetHistoryLimit(), appLogger)
	c.HistoryService = historyService

	sinks := service.HistorySinks{historyService}
	if c.UsageRepository != nil {
		sinks = append(sinks, service.NewUsageTracker(c.UsageRepository, appLogger))
	}

	c.ToolService = service.NewToolService(c.DocumentExtractor, sinks, appLogger)
	c.AdminService = service.NewAdminService(c.UsageRepository, appLogger)
	c.AuthService = service.NewAuthService(c.SupabaseClient, appLogger)

	appLogger.Info("Container initialized",
		"usage_store", config.GetUsageStore(),
		"pdf_backends", pdfProcessor.Name(),
		"ocr", recognizer != nil,
	)
	return c, nil
}

func (c *Container) initUsageRepository(supabaseReady bool) error {
	switch c.Config.GetUsageStore() {
	case UsageStoreSupabase:
		if !supabaseReady {
			c.Logger.Warn("Usage store supabase requested but Supabase is not configured, usage tracking is disabled")
			return nil
		}
		c.UsageRepository = repository.NewSupabaseUsageRepository(c.SupabaseClient, c.Logger)
	case UsageStorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
		defer cancel()

		db, err := repository.OpenPostgres(ctx, c.Config.GetDatabaseURL())
		if err != nil {
			return err
		}
		c.db = db
		c.UsageRepository = repository.NewPostgresUsageRepository(db)
	default:
		c.Logger.Info("Usage tracking is disabled")
	}
	return nil
}

// Close releases the database handle and the OCR engine
func (c *Container) Close() error {
	var errs []error
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	if c.ocr != nil {
		errs = append(errs, c.ocr.Close())
	}
	return errors.Join(errs...)
}
