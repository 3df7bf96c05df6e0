package aisles

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/internal/repo"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

// Repository handles aisle persistence, including the placement rows that
// tie products to aisles.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to aisle operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns aisles ordered by aisle number.
func (r *Repository) List(ctx context.Context, page pagination.Params, perPage int) ([]models.Aisle, error) {
	var rows []models.Aisle
	query := r.DB(ctx).Order("aisle_number asc")
	if page.Page > 0 {
		normalized := page.Normalized(perPage)
		query = query.Offset(normalized.Offset(perPage)).Limit(normalized.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads an aisle by its number.
func (r *Repository) Find(ctx context.Context, aisleNumber int) (*models.Aisle, error) {
	var row models.Aisle
	if err := r.DB(ctx).First(&row, "aisle_number = ?", aisleNumber).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateWithTx inserts the aisle using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, row *models.Aisle) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("aisle is required")
	}
	return tx.Create(row).Error
}

// UpdateWithTx persists the aisle using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, row *models.Aisle) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if row == nil {
		return fmt.Errorf("aisle is required")
	}
	return tx.Save(row).Error
}

// DeletePlacementsWithTx removes every product placement for the aisle.
func (r *Repository) DeletePlacementsWithTx(tx *gorm.DB, aisleNumber int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("aisle_number = ?", aisleNumber).Delete(&models.AisleContains{}).Error
}

// DeleteWithTx removes the aisle row itself.
func (r *Repository) DeleteWithTx(tx *gorm.DB, aisleNumber int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("aisle_number = ?", aisleNumber).Delete(&models.Aisle{}).Error
}
