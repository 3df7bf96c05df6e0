package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// NextID reserves the next integer id for a table. Postgres uses the
// dedicated sequence so concurrent creates never collide; sqlite (tests,
// local dev) has no sequences and falls back to max+1 inside the caller's
// transaction.
func NextID(tx *gorm.DB, table string, sequence string) (int, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}

	var next int
	if tx.Dialector.Name() == "postgres" {
		if err := tx.Raw("SELECT nextval(?)", sequence).Scan(&next).Error; err != nil {
			return 0, fmt.Errorf("advancing sequence %s: %w", sequence, err)
		}
		return next, nil
	}

	row := tx.Raw(fmt.Sprintf("SELECT COALESCE(MAX(id), 0) + 1 FROM %s", table))
	if err := row.Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("computing next id for %s: %w", table, err)
	}
	return next, nil
}
