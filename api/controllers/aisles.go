package controllers

import (
	"net/http"
	"strings"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/aisles"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const aislesPath = "/aisles"

func ListAisles(svc aisles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := listingPage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func CreateAisle(svc aisles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := aisleCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusCreated, dto, aislesPath)
	}
}

func UpdateAisle(svc aisles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aisleNumber, err := urlParamInt(r, "aisle_number")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := aisleUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), aisleNumber, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, aislesPath)
	}
}

// DeleteAisle removes the aisle and every shelf placement inside it.
func DeleteAisle(svc aisles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aisleNumber, err := urlParamInt(r, "aisle_number")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), aisleNumber); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"deleted": aisleNumber})
	}
}

type aislePayload struct {
	AisleNumber int    `json:"aisle_number" validate:"required,min=1"`
	Name        string `json:"name" validate:"required"`
}

type aisleUpdatePayload struct {
	Name *string `json:"name,omitempty"`
}

func aisleCreateInput(r *http.Request) (aisles.CreateAisleInput, error) {
	if isJSONRequest(r) {
		var payload aislePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return aisles.CreateAisleInput{}, err
		}
		return aisles.CreateAisleInput{
			AisleNumber: payload.AisleNumber,
			Name:        strings.TrimSpace(payload.Name),
		}, nil
	}

	aisleNumber, err := validators.FormInt(r, "aisle_number")
	if err != nil {
		return aisles.CreateAisleInput{}, err
	}
	return aisles.CreateAisleInput{
		AisleNumber: aisleNumber,
		Name:        validators.FormString(r, "name"),
	}, nil
}

func aisleUpdateInput(r *http.Request) (aisles.UpdateAisleInput, error) {
	if isJSONRequest(r) {
		var payload aisleUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return aisles.UpdateAisleInput{}, err
		}
		return aisles.UpdateAisleInput{Name: trimPtr(payload.Name)}, nil
	}
	if err := requirePutOverride(r); err != nil {
		return aisles.UpdateAisleInput{}, err
	}
	return aisles.UpdateAisleInput{
		Name: validators.FormOptionalString(r, "name"),
	}, nil
}
