package controllers

import (
	"net/http"
	"strings"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/customers"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const customersPath = "/customers"

func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := customerCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusCreated, dto, customersPath)
	}
}

func UpdateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := customerUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, customersPath)
	}
}

// Walk-in customers are recorded with whatever the register clerk captured,
// so every field is optional.
type customerPayload struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type customerUpdatePayload struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func customerCreateInput(r *http.Request) (customers.CreateCustomerInput, error) {
	if isJSONRequest(r) {
		var payload customerPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return customers.CreateCustomerInput{}, err
		}
		return customers.CreateCustomerInput{
			Name:  strings.TrimSpace(payload.Name),
			Phone: strings.TrimSpace(payload.Phone),
			Email: strings.TrimSpace(payload.Email),
		}, nil
	}
	return customers.CreateCustomerInput{
		Name:  validators.FormString(r, "name"),
		Phone: validators.FormString(r, "phone_number"),
		Email: validators.FormString(r, "email"),
	}, nil
}

func customerUpdateInput(r *http.Request) (customers.UpdateCustomerInput, error) {
	if isJSONRequest(r) {
		var payload customerUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return customers.UpdateCustomerInput{}, err
		}
		return customers.UpdateCustomerInput{
			Name:  trimPtr(payload.Name),
			Phone: trimPtr(payload.Phone),
			Email: trimPtr(payload.Email),
		}, nil
	}
	if err := requirePutOverride(r); err != nil {
		return customers.UpdateCustomerInput{}, err
	}
	return customers.UpdateCustomerInput{
		Name:  validators.FormOptionalString(r, "name"),
		Phone: validators.FormOptionalString(r, "phone_number"),
		Email: validators.FormOptionalString(r, "email"),
	}, nil
}
