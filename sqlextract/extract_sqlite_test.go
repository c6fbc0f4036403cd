package sqlextract

import (
	"context"
	"testing"

	"github.com/ciderkit/cider"
)

// openSQLite creates an in-memory engine with a seeded users table.
func openSQLite(t *testing.T) *cider.Engine {
	t.Helper()
	engine, err := cider.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	engine.SetLogger(nil)

	ctx := context.Background()
	if _, err := engine.DB().ExecContext(ctx, "create table users (id integer primary key, name text)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	insert, err := engine.Query("insert into users (id, name) values (#{id}, #{name})")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := insert.MustBind("id", 1).MustBind("name", "apple").ExecContext(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return engine
}

func TestExtractedSQLIsExecutable(t *testing.T) {
	engine := openSQLite(t)
	query, err := engine.Query("select name from users where id = #{id}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	query.MustBind("id", 1)

	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "select name from users where id = ?" {
		t.Errorf("unexpected sql: %q", sql)
	}

	values, err := ParameterValues(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the extracted SQL and values run as-is against the database
	args := make([]any, len(values))
	copy(args, values)
	var name string
	if err := engine.DB().QueryRow(sql, args...).Scan(&name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "apple" {
		t.Errorf("expected %q, got %q", "apple", name)
	}
}

func TestExtractionMatchesExecution(t *testing.T) {
	engine := openSQLite(t)
	query, err := engine.Query("select name from users where id = #{id}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	query.MustBind("id", 1)

	rows, err := query.QueryContext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		t.Fatal("expected a row")
	}
	var name string
	if err := rows.Scan(&name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "apple" {
		t.Errorf("expected %q, got %q", "apple", name)
	}

	// extraction observes the same plan the execution used
	if size := engine.InterpretationCache().Size(); size != 1 {
		t.Errorf("expected a single cached plan, got %d", size)
	}
	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "select name from users where id = ?" {
		t.Errorf("unexpected sql: %q", sql)
	}
}
