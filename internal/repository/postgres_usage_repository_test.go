package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"pdf-smart-tools/internal/domain"
)

// fakeConn answers every query with one canned result set and records the
// statements it was given.
type fakeConn struct {
	mu      sync.Mutex
	columns []string
	rows    [][]driver.Value
	err     error
	queries []string
	args    [][]driver.Value
}

func (c *fakeConn) record(query string, args []driver.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, query)
	c.args = append(c.args, args)
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{conn: c, query: query}, nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions are not supported") }

type fakeStmt struct {
	conn  *fakeConn
	query string
}

func (s *fakeStmt) Close() error  { return nil }
func (s *fakeStmt) NumInput() int { return -1 }

func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.conn.record(s.query, args)
	if s.conn.err != nil {
		return nil, s.conn.err
	}
	return driver.RowsAffected(1), nil
}

func (s *fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.conn.record(s.query, args)
	if s.conn.err != nil {
		return nil, s.conn.err
	}
	return &fakeRows{columns: s.conn.columns, values: s.conn.rows}, nil
}

type fakeRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

type fakeConnector struct{ conn *fakeConn }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c fakeConnector) Driver() driver.Driver                        { return fakeDriver{conn: c.conn} }

type fakeDriver struct{ conn *fakeConn }

func (d fakeDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func newFakeUsageRepository(t *testing.T, conn *fakeConn) domain.UsageRepository {
	t.Helper()
	db := sql.OpenDB(fakeConnector{conn: conn})
	t.Cleanup(func() { db.Close() })
	return NewPostgresUsageRepository(db)
}

func TestPostgresUsageRepository_Insert(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantFile driver.Value
	}{
		{
			// Tests that the file name is passed through
			name:     "With file name",
			fileName: "a.pdf",
			wantFile: "a.pdf",
		},
		{
			// Tests that an empty file name becomes NULL
			name:     "Without file name",
			fileName: "",
			wantFile: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{}
			repo := newFakeUsageRepository(t, conn)

			if err := repo.Insert(context.Background(), "user-1", domain.ToolTextExtract, tt.fileName); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(conn.queries) != 1 || !strings.Contains(conn.queries[0], "insert into usage_logs") {
				t.Fatalf("unexpected queries %q", conn.queries)
			}
			args := conn.args[0]
			if len(args) != 3 || args[0] != "user-1" || args[1] != domain.ToolTextExtract || args[2] != tt.wantFile {
				t.Fatalf("unexpected args %#v", args)
			}
		})
	}
}

func TestPostgresUsageRepository_Recent(t *testing.T) {
	newer := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	conn := &fakeConn{
		columns: []string{"id", "user_id", "tool_name", "file_name", "created_at"},
		rows: [][]driver.Value{
			{"l2", "u1", "Key Points", "b.pdf", newer},
			{"l1", "u2", "Smart Search", nil, older},
		},
	}
	repo := newFakeUsageRepository(t, conn)

	logs, err := repo.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != "l2" || !logs[0].CreatedAt.Equal(newer) {
		t.Fatalf("unexpected logs %+v", logs)
	}
	if logs[0].FileName == nil || *logs[0].FileName != "b.pdf" {
		t.Fatalf("expected file name, got %v", logs[0].FileName)
	}
	// NULL file names stay nil
	if logs[1].FileName != nil {
		t.Fatalf("expected nil file name, got %q", *logs[1].FileName)
	}
	if !strings.Contains(conn.queries[0], "order by created_at desc") || conn.args[0][0] != int64(10) {
		t.Fatalf("unexpected query %q with %v", conn.queries[0], conn.args[0])
	}
}

func TestPostgresUsageRepository_ListToolNamesAndProfiles(t *testing.T) {
	conn := &fakeConn{
		columns: []string{"tool_name"},
		rows:    [][]driver.Value{{"Key Points"}, {"Text Extract"}},
	}
	repo := newFakeUsageRepository(t, conn)

	names, err := repo.ListToolNames(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[1] != "Text Extract" {
		t.Fatalf("unexpected names %v", names)
	}

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	conn.columns = []string{"id", "email", "created_at"}
	conn.rows = [][]driver.Value{{"u1", "a@example.com", created}, {"u2", "", created}}

	profiles, err := repo.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 || profiles[0].Email != "a@example.com" || !profiles[1].CreatedAt.Equal(created) {
		t.Fatalf("unexpected profiles %+v", profiles)
	}
}

func TestPostgresUsageRepository_QueryError(t *testing.T) {
	cause := errors.New("connection reset")
	repo := newFakeUsageRepository(t, &fakeConn{err: cause})

	if _, err := repo.ListProfiles(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if err := repo.Insert(context.Background(), "u1", domain.ToolKeyPoints, "a.pdf"); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestOpenPostgres_RequiresDSN(t *testing.T) {
	if _, err := OpenPostgres(context.Background(), ""); err == nil {
		t.Fatalf("expected error without DSN")
	}
}
