package controllers

import (
	"net/http"
	"strings"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/suppliers"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const suppliersPath = "/suppliers"

func ListSuppliers(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := supplierCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusCreated, dto, suppliersPath)
	}
}

func UpdateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := supplierUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, suppliersPath)
	}
}

type supplierPayload struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type supplierUpdatePayload struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func supplierCreateInput(r *http.Request) (suppliers.CreateSupplierInput, error) {
	if isJSONRequest(r) {
		var payload supplierPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return suppliers.CreateSupplierInput{}, err
		}
		return suppliers.CreateSupplierInput{
			Name:    strings.TrimSpace(payload.Name),
			Address: strings.TrimSpace(payload.Address),
			Phone:   strings.TrimSpace(payload.Phone),
		}, nil
	}
	return suppliers.CreateSupplierInput{
		Name:    validators.FormString(r, "name"),
		Address: validators.FormString(r, "address"),
		Phone:   validators.FormString(r, "phone_number"),
	}, nil
}

func supplierUpdateInput(r *http.Request) (suppliers.UpdateSupplierInput, error) {
	if isJSONRequest(r) {
		var payload supplierUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return suppliers.UpdateSupplierInput{}, err
		}
		return suppliers.UpdateSupplierInput{
			Name:    trimPtr(payload.Name),
			Address: trimPtr(payload.Address),
			Phone:   trimPtr(payload.Phone),
		}, nil
	}
	if err := requirePutOverride(r); err != nil {
		return suppliers.UpdateSupplierInput{}, err
	}
	return suppliers.UpdateSupplierInput{
		Name:    validators.FormOptionalString(r, "name"),
		Address: validators.FormOptionalString(r, "address"),
		Phone:   validators.FormOptionalString(r, "phone_number"),
	}, nil
}
