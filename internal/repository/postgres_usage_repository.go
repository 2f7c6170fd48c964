package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pdf-smart-tools/internal/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres opens and pings a pgx-backed database handle
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return db, nil
}

// PostgresUsageRepository implements domain.UsageRepository against a
// Postgres database holding the usage_logs and profiles tables.
type PostgresUsageRepository struct {
	DB *sql.DB
}

// NewPostgresUsageRepository creates a new Postgres usage repository
func NewPostgresUsageRepository(db *sql.DB) domain.UsageRepository {
	return &PostgresUsageRepository{DB: db}
}

func (r *PostgresUsageRepository) Insert(ctx context.Context, userID, toolName, fileName string) error {
	var name sql.NullString
	if fileName != "" {
		name = sql.NullString{String: fileName, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, `
		insert into usage_logs (user_id, tool_name, file_name)
		values ($1, $2, $3)
	`, userID, toolName, name)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

func (r *PostgresUsageRepository) ListToolNames(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `select tool_name from usage_logs`)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *PostgresUsageRepository) Recent(ctx context.Context, limit int) ([]domain.UsageLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
		select id::text, user_id::text, tool_name, file_name, created_at
		from usage_logs
		order by created_at desc
		limit $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent usage: %w", err)
	}
	defer rows.Close()

	logs := make([]domain.UsageLog, 0, limit)
	for rows.Next() {
		var (
			l        domain.UsageLog
			fileName sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.ToolName, &fileName, &l.CreatedAt); err != nil {
			return nil, err
		}
		if fileName.Valid {
			name := fileName.String
			l.FileName = &name
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *PostgresUsageRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.DB.QueryContext(ctx, `
		select id::text, coalesce(email, ''), created_at
		from profiles
		order by created_at desc
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
