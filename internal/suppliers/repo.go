package suppliers

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles supplier persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to supplier operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns suppliers ordered by id.
func (r *Repository) List(ctx context.Context, page pagination.Params, perPage int) ([]models.Supplier, error) {
	var rows []models.Supplier
	query := r.DB(ctx).Order("id asc")
	if page.Page > 0 {
		normalized := page.Normalized(perPage)
		query = query.Offset(normalized.Offset(perPage)).Limit(normalized.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads a supplier by id.
func (r *Repository) Find(ctx context.Context, id int) (*models.Supplier, error) {
	var row models.Supplier
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIDWithTx reserves the next supplier id inside the transaction.
func (r *Repository) NextIDWithTx(tx *gorm.DB) (int, error) {
	return repo.NextID(tx, "suppliers", "suppliers_id_seq")
}

// CreateWithTx inserts the supplier using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Supplier) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("supplier is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the supplier using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Supplier) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("supplier is required")
	}
	return tx.Save(row).Error
}
