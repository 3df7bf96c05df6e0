package departments

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles department persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to department operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns departments ordered by id.
func (r *Repository) List(ctx context.Context, page pagination.Params, perPage int) ([]models.Department, error) {
	var rows []models.Department
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

// Find loads a department by id.
func (r *Repository) Find(ctx context.Context, id int) (*models.Department, error) {
	var row models.Department
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIDWithTx reserves the next department id inside the transaction.
func (r *Repository) NextIDWithTx(tx *gorm.DB) (int, error) {
	return repo.NextID(tx, "departments", "departments_id_seq")
}

// CreateWithTx inserts the department using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Department) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("department is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the department using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Department) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("department is required")
	}
	return tx.Save(row).Error
}
