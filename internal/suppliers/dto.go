package suppliers

import "github.com/minliz/udacimarket-backend/pkg/db/models"

// SupplierDTO exposes a supplier row in API responses.
type SupplierDTO struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateSupplierInput holds creation-time fields.
type CreateSupplierInput struct {
	Name    string
	Address string
	Phone   string
}

// UpdateSupplierInput carries optional replacements; nil fields keep the
// stored value.
type UpdateSupplierInput struct {
	Name    *string
	Address *string
	Phone   *string
}

// FromModel maps the persisted supplier into a DTO.
func FromModel(m *models.Supplier) *SupplierDTO {
	if m == nil {
		return nil
	}
	return &SupplierDTO{ID: m.ID, Name: m.Name, Address: m.Address, Phone: m.Phone}
}

// FromModels maps a slice preserving order.
func FromModels(rows []models.Supplier) []SupplierDTO {
	out := make([]SupplierDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
