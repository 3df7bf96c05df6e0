package customers

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles customer persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to customer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns customers ordered by id.
func (r *Repository) List(ctx context.Context, page pagination.Params, perPage int) ([]models.Customer, error) {
	var rows []models.Customer
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

// Find loads a customer by id.
func (r *Repository) Find(ctx context.Context, id int) (*models.Customer, error) {
	var row models.Customer
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByName loads the first customer matching the exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Customer, error) {
	var row models.Customer
	if err := r.DB(ctx).First(&row, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIDWithTx reserves the next customer id inside the transaction.
func (r *Repository) NextIDWithTx(tx *gorm.DB) (int, error) {
	return repo.NextID(tx, "customers", "customers_id_seq")
}

// CreateWithTx inserts the customer using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Customer) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("customer is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the customer using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Customer) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("customer is required")
	}
	return tx.Save(row).Error
}
