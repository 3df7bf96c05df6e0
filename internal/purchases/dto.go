package purchases

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
)

// PurchaseDTO exposes a purchase row in API responses.
type PurchaseDTO struct {
	ID           int             `json:"id"`
	ProductID    int             `json:"product_id"`
	Quantity     int             `json:"quantity"`
	CustomerID   int             `json:"customer_id"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	Total        decimal.Decimal `json:"total"`
	IsCancelled  bool            `json:"is_cancelled"`
}

// WithNames is the listing row: the purchase joined with its product and
// customer names.
type WithNames struct {
	ID           int             `json:"id"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	CustomerID   int             `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	Total        decimal.Decimal `json:"total"`
	IsCancelled  bool            `json:"is_cancelled"`
}

// CreatePurchaseInput holds creation-time fields. Product and customer are
// identified by name, the way the sales floor records them.
type CreatePurchaseInput struct {
	ProductName  string
	CustomerName string
	Quantity     int
	PurchaseDate *time.Time
}

// UpdatePurchaseInput carries optional replacements; nil fields keep the
// stored value. A quantity change recomputes the total at the product's
// current price.
type UpdatePurchaseInput struct {
	Quantity     *int
	PurchaseDate *time.Time
	IsCancelled  *bool
}

// FromModel maps the persisted purchase into a DTO.
func FromModel(m *models.Purchase) *PurchaseDTO {
	if m == nil {
		return nil
	}
	return &PurchaseDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		CustomerID:   m.CustomerID,
		PurchaseDate: m.PurchaseDate,
		Total:        m.Total,
		IsCancelled:  m.IsCancelled,
	}
}
