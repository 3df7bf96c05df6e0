package aisles

import "github.com/minliz/udacimarket-backend/pkg/db/models"

// AisleDTO exposes an aisle row in API responses.
type AisleDTO struct {
	AisleNumber int    `json:"aisle_number"`
	Name        string `json:"name"`
}

// CreateAisleInput holds creation-time fields. The aisle number is chosen by
// the store, not generated.
type CreateAisleInput struct {
	AisleNumber int
	Name        string
}

// UpdateAisleInput carries optional replacements; nil fields keep the
// stored value. The aisle number itself is immutable.
type UpdateAisleInput struct {
	Name *string
}

// FromModel maps the persisted aisle into a DTO.
func FromModel(m *models.Aisle) *AisleDTO {
	if m == nil {
		return nil
	}
	return &AisleDTO{AisleNumber: m.AisleNumber, Name: m.Name}
}

// FromModels maps a slice preserving order.
func FromModels(rows []models.Aisle) []AisleDTO {
	out := make([]AisleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
