package repo

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestNextIDFallsBackToMaxPlusOne(t *testing.T) {
	db := newTestDB(t)
	if err := db.Exec("CREATE TABLE next_id_probe (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	next, err := NextID(db, "next_id_probe", "next_id_probe_id_seq")
	if err != nil {
		t.Fatalf("next id on empty table: %v", err)
	}
	if next != 1 {
		t.Fatalf("expected 1 on empty table, got %d", next)
	}

	if err := db.Exec("INSERT INTO next_id_probe (id, name) VALUES (7, 'x')").Error; err != nil {
		t.Fatalf("seed row: %v", err)
	}

	next, err = NextID(db, "next_id_probe", "next_id_probe_id_seq")
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if next != 8 {
		t.Fatalf("expected 8, got %d", next)
	}
}

func TestNextIDRequiresTx(t *testing.T) {
	if _, err := NextID(nil, "t", "s"); err == nil {
		t.Fatal("expected error for nil tx")
	}
}
