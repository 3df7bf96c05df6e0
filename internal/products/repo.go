package products

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles product persistence and the aisle placement rows.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListWithPlacement returns products joined with their department and the
// aisle holding them, ordered by product id. The join is strict: a product
// without a placement row does not appear in the listing.
func (r *Repository) ListWithPlacement(ctx context.Context, page pagination.Params, perPage int) ([]WithPlacement, error) {
	var rows []WithPlacement
	query := r.DB(ctx).
		Table("products").
		Select(`products.*,
			departments.name AS department_name,
			aislecontains.aisle_number AS aisle_number,
			aisles.name AS aisle_name`).
		Joins("JOIN departments ON departments.id = products.department_id").
		Joins("JOIN aislecontains ON aislecontains.product_id = products.id").
		Joins("JOIN aisles ON aisles.aisle_number = aislecontains.aisle_number").
		Order("products.id asc")
	if page.Page > 0 {
		normalized := page.Normalized(perPage)
		query = query.Offset(normalized.Offset(perPage)).Limit(normalized.Limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads a product by id.
func (r *Repository) Find(ctx context.Context, id int) (*models.Product, error) {
	var row models.Product
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByName loads the first product matching the exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var row models.Product
	if err := r.DB(ctx).First(&row, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIDWithTx reserves the next product id inside the transaction.
func (r *Repository) NextIDWithTx(tx *gorm.DB) (int, error) {
	return repo.NextID(tx, "products", "products_id_seq")
}

// CreateWithTx inserts the product using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Product) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("product is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the product using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Product) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("product is required")
	}
	return tx.Save(row).Error
}

// Placement returns the aisle placement for the product, if any.
func (r *Repository) Placement(ctx context.Context, productID int) (*models.AisleContains, error) {
	var row models.AisleContains
	if err := r.DB(ctx).First(&row, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreatePlacement inserts a placement row outside any caller transaction.
// Product creation keeps the placement insert independent on purpose.
func (r *Repository) CreatePlacement(ctx context.Context, row *models.AisleContains) error {
	if row == nil {
		return fmt.Errorf("placement is required")
	}
	return r.DB(ctx).Create(row).Error
}

// MovePlacementWithTx re-homes the product to a new aisle inside the
// caller's transaction.
func (r *Repository) MovePlacementWithTx(tx *gorm.DB, productID, aisleNumber int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.AisleContains{}).Error; err != nil {
		return err
	}
	return tx.Create(&models.AisleContains{AisleNumber: aisleNumber, ProductID: productID}).Error
}
