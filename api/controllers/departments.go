package controllers

import (
	"net/http"
	"strings"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/departments"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const departmentsPath = "/departments"

func ListDepartments(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateDepartment(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := departmentCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusCreated, dto, departmentsPath)
	}
}

func UpdateDepartment(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := departmentUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, departmentsPath)
	}
}

type departmentPayload struct {
	Name string `json:"name" validate:"required"`
}

type departmentUpdatePayload struct {
	Name *string `json:"name,omitempty"`
}

func departmentCreateInput(r *http.Request) (departments.CreateDepartmentInput, error) {
	if isJSONRequest(r) {
		var payload departmentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return departments.CreateDepartmentInput{}, err
		}
		return departments.CreateDepartmentInput{Name: strings.TrimSpace(payload.Name)}, nil
	}
	return departments.CreateDepartmentInput{
		Name: validators.FormString(r, "name"),
	}, nil
}

func departmentUpdateInput(r *http.Request) (departments.UpdateDepartmentInput, error) {
	if isJSONRequest(r) {
		var payload departmentUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return departments.UpdateDepartmentInput{}, err
		}
		return departments.UpdateDepartmentInput{Name: trimPtr(payload.Name)}, nil
	}
	if err := requirePutOverride(r); err != nil {
		return departments.UpdateDepartmentInput{}, err
	}
	return departments.UpdateDepartmentInput{
		Name: validators.FormOptionalString(r, "name"),
	}, nil
}
