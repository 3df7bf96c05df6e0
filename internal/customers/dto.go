package customers

import "github.com/minliz/udacimarket-backend/pkg/db/models"

// CustomerDTO exposes a customer row in API responses.
type CustomerDTO struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CreateCustomerInput holds creation-time fields. Everything is optional;
// the store keeps sparse walk-in records.
type CreateCustomerInput struct {
	Name  string
	Phone string
	Email string
}

// UpdateCustomerInput carries optional replacements; nil fields keep the
// stored value.
type UpdateCustomerInput struct {
	Name  *string
	Phone *string
	Email *string
}

// FromModel maps the persisted customer into a DTO.
func FromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{ID: m.ID, Name: m.Name, Phone: m.Phone, Email: m.Email}
}

// FromModels maps a slice preserving order.
func FromModels(rows []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
