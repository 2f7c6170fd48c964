package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pdf-smart-tools/internal/domain"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const (
	usageLogsTable = "usage_logs"
	profilesTable  = "profiles"
)

// SupabaseUsageRepository implements domain.UsageRepository on top of the
// usage_logs and profiles tables. Queries run with the service role key
// because the dashboard aggregates over every user.
type SupabaseUsageRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseUsageRepository creates a new Supabase usage repository
func NewSupabaseUsageRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.UsageRepository {
	return &SupabaseUsageRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

type usageLogRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ToolName  string    `json:"tool_name"`
	FileName  *string   `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

type profileRow struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *SupabaseUsageRepository) client() (*supabase.Client, error) {
	client, err := r.supabaseClient.ServiceClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get service client: %w", err)
	}
	if client == nil {
		return nil, errSupabaseNotInitialized
	}
	return client, nil
}

// Insert adds a usage log row. An empty file name is stored as NULL.
func (r *SupabaseUsageRepository) Insert(ctx context.Context, userID, toolName, fileName string) error {
	client, err := r.client()
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"user_id":   userID,
		"tool_name": toolName,
		"file_name": nullableString(fileName),
	}
	if _, _, err := client.From(usageLogsTable).Insert(data, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

// ListToolNames returns the tool name of every usage log row
func (r *SupabaseUsageRepository) ListToolNames(ctx context.Context) ([]string, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}

	resp, _, err := client.From(usageLogsTable).Select("tool_name", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}

	var rows []struct {
		ToolName string `json:"tool_name"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse usage logs: %w", err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.ToolName)
	}
	return names, nil
}

// Recent returns the newest usage logs, newest first
func (r *SupabaseUsageRepository) Recent(ctx context.Context, limit int) ([]domain.UsageLog, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}

	resp, _, err := client.From(usageLogsTable).
		Select("id, user_id, tool_name, file_name, created_at", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent usage: %w", err)
	}

	var rows []usageLogRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse recent usage: %w", err)
	}

	logs := make([]domain.UsageLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, domain.UsageLog{
			ID:        row.ID,
			UserID:    row.UserID,
			ToolName:  row.ToolName,
			FileName:  row.FileName,
			CreatedAt: row.CreatedAt,
		})
	}
	return logs, nil
}

// ListProfiles returns every profile, newest first
func (r *SupabaseUsageRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}

	resp, _, err := client.From(profilesTable).
		Select("id, email, created_at", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var rows []profileRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(rows))
	for _, row := range rows {
		p := domain.Profile{ID: row.ID, CreatedAt: row.CreatedAt}
		if row.Email != nil {
			p.Email = *row.Email
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
