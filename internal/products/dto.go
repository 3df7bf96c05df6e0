package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
)

// ProductDTO exposes a product row in API responses.
type ProductDTO struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	PricePerCostUnit decimal.Decimal `json:"price_per_cost_unit"`
	CostUnit         string          `json:"cost_unit"`
	DepartmentID     int             `json:"department_id"`
	QuantityInStock  int             `json:"quantity_in_stock"`
	Brand            *string         `json:"brand,omitempty"`
	ProductionDate   *time.Time      `json:"production_date,omitempty"`
	BestBeforeDate   *time.Time      `json:"best_before_date,omitempty"`
	PLU              *int            `json:"plu,omitempty"`
	UPC              *int64          `json:"upc,omitempty"`
	Organic          int             `json:"organic"`
	Cut              *string         `json:"cut,omitempty"`
	Animal           *string         `json:"animal,omitempty"`
}

// WithPlacement is the listing row: the full product joined with its
// department name and the aisle holding it. Unplaced products are not
// listing rows.
type WithPlacement struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	PricePerCostUnit decimal.Decimal `json:"price_per_cost_unit"`
	CostUnit         string          `json:"cost_unit"`
	DepartmentID     int             `json:"department_id"`
	DepartmentName   string          `json:"department_name"`
	QuantityInStock  int             `json:"quantity_in_stock"`
	Brand            *string         `json:"brand,omitempty"`
	ProductionDate   *time.Time      `json:"production_date,omitempty"`
	BestBeforeDate   *time.Time      `json:"best_before_date,omitempty"`
	PLU              *int            `json:"plu,omitempty"`
	UPC              *int64          `json:"upc,omitempty"`
	Organic          int             `json:"organic"`
	Cut              *string         `json:"cut,omitempty"`
	Animal           *string         `json:"animal,omitempty"`
	AisleNumber      int             `json:"aisle_number"`
	AisleName        string          `json:"aisle_name"`
}

// CreateProductInput holds creation-time fields. AisleNumber, when set,
// places the product after the row is inserted.
type CreateProductInput struct {
	Name             string
	PricePerCostUnit decimal.Decimal
	CostUnit         string
	DepartmentID     int
	QuantityInStock  int
	Brand            *string
	ProductionDate   *time.Time
	BestBeforeDate   *time.Time
	PLU              *int
	UPC              *int64
	Organic          int
	Cut              *string
	Animal           *string
	AisleNumber      *int
}

// UpdateProductInput carries optional replacements; nil fields keep the
// stored value. A non-nil AisleNumber moves the placement row.
type UpdateProductInput struct {
	Name             *string
	PricePerCostUnit *decimal.Decimal
	CostUnit         *string
	DepartmentID     *int
	QuantityInStock  *int
	Brand            *string
	ProductionDate   *time.Time
	BestBeforeDate   *time.Time
	PLU              *int
	UPC              *int64
	Organic          *int
	Cut              *string
	Animal           *string
	AisleNumber      *int
}

// CreateResult reports the outcome of a create. The placement insert is
// deliberately independent of the product insert: the product can land
// while its aisle association fails, and callers surface both outcomes.
type CreateResult struct {
	Product      *ProductDTO
	PlacementErr error
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:               m.ID,
		Name:             m.Name,
		PricePerCostUnit: m.PricePerCostUnit,
		CostUnit:         m.CostUnit,
		DepartmentID:     m.DepartmentID,
		QuantityInStock:  m.QuantityInStock,
		Brand:            m.Brand,
		ProductionDate:   m.ProductionDate,
		BestBeforeDate:   m.BestBeforeDate,
		PLU:              m.PLU,
		UPC:              m.UPC,
		Organic:          m.Organic,
		Cut:              m.Cut,
		Animal:           m.Animal,
	}
}
