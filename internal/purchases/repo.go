package purchases

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles purchase persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to purchase operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListWithNames returns purchases joined with product and customer names,
// ordered by id.
func (r *Repository) ListWithNames(ctx context.Context, page pagination.Params, perPage int) ([]WithNames, error) {
	var rows []WithNames
	query := r.DB(ctx).
		Table("purchases").
		Select(`purchases.id, purchases.product_id, purchases.quantity,
			purchases.customer_id, purchases.purchase_date, purchases.total,
			purchases.is_cancelled,
			products.name AS product_name,
			customers.name AS customer_name`).
		Joins("JOIN products ON products.id = purchases.product_id").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Order("purchases.id asc")
	if page.Page > 0 {
		normalized := page.Normalized(perPage)
		query = query.Offset(normalized.Offset(perPage)).Limit(normalized.Limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads a purchase by id.
func (r *Repository) Find(ctx context.Context, id int) (*models.Purchase, error) {
	var row models.Purchase
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIDWithTx reserves the next purchase id inside the transaction.
func (r *Repository) NextIDWithTx(tx *gorm.DB) (int, error) {
	return repo.NextID(tx, "purchases", "purchases_id_seq")
}

// CreateWithTx inserts the purchase using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Purchase) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("purchase is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the purchase using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Purchase) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("purchase is required")
	}
	return tx.Save(row).Error
}
