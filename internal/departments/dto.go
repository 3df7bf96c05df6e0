package departments

import "github.com/minliz/udacimarket-backend/pkg/db/models"

// DepartmentDTO exposes a department row in API responses.
type DepartmentDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateDepartmentInput holds creation-time fields.
type CreateDepartmentInput struct {
	Name string
}

// UpdateDepartmentInput carries optional replacements; nil fields keep the
// stored value.
type UpdateDepartmentInput struct {
	Name *string
}

// FromModel maps the persisted department into a DTO.
func FromModel(m *models.Department) *DepartmentDTO {
	if m == nil {
		return nil
	}
	return &DepartmentDTO{ID: m.ID, Name: m.Name}
}

// FromModels maps a slice preserving order.
func FromModels(rows []models.Department) []DepartmentDTO {
	out := make([]DepartmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
