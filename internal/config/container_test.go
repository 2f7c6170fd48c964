package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pdf-smart-tools/internal/domain"
	"pdf-smart-tools/internal/pdftest"
	"pdf-smart-tools/pkg/logger"
)

func offlineConfig() *AppConfig {
	return &AppConfig{
		ServerPort:      "8080",
		LogLevel:        "error",
		MaxFileSize:     64 << 10,
		PDFFallbackFitz: false,
		PDFPageTimeout:  time.Second,
		HistoryLimit:    2,
		UsageStore:      UsageStoreNone,
	}
}

func TestNewContainerWithConfig_Offline(t *testing.T) {
	c, err := NewContainerWithConfig(offlineConfig(), logger.NewWithWriter("error", io.Discard))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if c.UsageRepository != nil {
		t.Fatalf("expected usage tracking to be disabled")
	}
	if _, err := c.AdminService.Dashboard(context.Background()); !errors.Is(err, domain.ErrUsageStoreDisabled) {
		t.Fatalf("expected ErrUsageStoreDisabled, got %v", err)
	}
	if _, err := c.AuthService.ValidateToken("any"); err == nil {
		t.Fatalf("expected token validation to fail without Supabase")
	}

	// Tools record into the in-memory history with the configured limit
	ctx := domain.WithActor(context.Background(), domain.Actor{ID: "browser-1"})
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := c.ToolService.ExtractText(ctx, strings.NewReader("hello world"), name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, err := c.HistoryService.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].FileName != "c.txt" {
		t.Fatalf("unexpected history %+v", items)
	}
}

func TestNewContainerWithConfig_ExtractsPDF(t *testing.T) {
	c, err := NewContainerWithConfig(offlineConfig(), logger.NewWithWriter("error", io.Discard))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	pdfBytes := pdftest.Build("Board Minutes", pdftest.TextLine(12, 72, 720, "Quarterly", -300, "results"))
	result, err := c.ToolService.ExtractText(context.Background(), bytes.NewReader(pdfBytes), "minutes.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "Board Minutes" || result.PageCount != 1 || result.WordCount != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestNewContainerWithConfig_PostgresUnreachable(t *testing.T) {
	cfg := offlineConfig()
	cfg.UsageStore = UsageStorePostgres

	if _, err := NewContainerWithConfig(cfg, logger.NewWithWriter("error", io.Discard)); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}
