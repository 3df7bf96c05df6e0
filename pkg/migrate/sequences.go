package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

// idSequenceTables lists every table whose ids come from a dedicated
// sequence on postgres. sqlite has no sequences; its id reservation falls
// back to max+1 inside the insert transaction.
var idSequenceTables = []string{
	"customers",
	"departments",
	"employees",
	"products",
	"suppliers",
	"purchases",
}

// EnsureIDSequences creates the per-table id sequences and aligns each with
// any rows already present. The statements are postgres-only, so the helper
// is a no-op on every other dialect; it is idempotent and safe to run after
// each migration up.
func EnsureIDSequences(ctx context.Context, db *sql.DB, dialect string) error {
	if dialect != "postgres" {
		return nil
	}
	if db == nil {
		return fmt.Errorf("db is required")
	}

	for _, table := range idSequenceTables {
		seq := table + "_id_seq"
		create := fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s OWNED BY %s.id", seq, table)
		if _, err := db.ExecContext(ctx, create); err != nil {
			return fmt.Errorf("creating sequence %s: %w", seq, err)
		}
		align := fmt.Sprintf("SELECT setval('%s', COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)", seq, table)
		if _, err := db.ExecContext(ctx, align); err != nil {
			return fmt.Errorf("aligning sequence %s: %w", seq, err)
		}
	}
	return nil
}
