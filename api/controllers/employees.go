package controllers

import (
	"net/http"
	"strings"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/employees"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const employeesPath = "/employees"

func ListEmployees(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateEmployee(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := employeeCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusCreated, dto, employeesPath)
	}
}

func UpdateEmployee(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := employeeUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, employeesPath)
	}
}

type employeePayload struct {
	Name         string `json:"name" validate:"required"`
	DepartmentID int    `json:"department_id" validate:"required,min=1"`
	Title        string `json:"title,omitempty"`
	EmpNumber    int64  `json:"emp_number,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Wage         int    `json:"wage,omitempty" validate:"omitempty,min=0"`
	IsActive     bool   `json:"is_active,omitempty"`
}

type employeeUpdatePayload struct {
	Name         *string `json:"name,omitempty"`
	DepartmentID *int    `json:"department_id,omitempty" validate:"omitempty,min=1"`
	Title        *string `json:"title,omitempty"`
	EmpNumber    *int64  `json:"emp_number,omitempty"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Wage         *int    `json:"wage,omitempty" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func employeeCreateInput(r *http.Request) (employees.CreateEmployeeInput, error) {
	if isJSONRequest(r) {
		var payload employeePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return employees.CreateEmployeeInput{}, err
		}
		return employees.CreateEmployeeInput{
			Name:         strings.TrimSpace(payload.Name),
			DepartmentID: payload.DepartmentID,
			Title:        strings.TrimSpace(payload.Title),
			EmpNumber:    payload.EmpNumber,
			Address:      strings.TrimSpace(payload.Address),
			Phone:        strings.TrimSpace(payload.Phone),
			Wage:         payload.Wage,
			IsActive:     payload.IsActive,
		}, nil
	}

	// The staffing form submits the department as a "<id> - <name>" select
	// option.
	departmentID, err := validators.FormSelectID(r, "department_name")
	if err != nil {
		return employees.CreateEmployeeInput{}, err
	}
	input := employees.CreateEmployeeInput{
		Name:     validators.FormString(r, "name"),
		Title:    validators.FormString(r, "title"),
		Address:  validators.FormString(r, "address"),
		Phone:    validators.FormString(r, "phone_number"),
		IsActive: validators.FormCheckbox(r, "is_active"),
	}
	if departmentID != nil {
		input.DepartmentID = *departmentID
	}
	if empNumber, err := validators.FormOptionalInt(r, "emp_number"); err != nil {
		return employees.CreateEmployeeInput{}, err
	} else if empNumber != nil {
		input.EmpNumber = int64(*empNumber)
	}
	if wage, err := validators.FormOptionalInt(r, "wage"); err != nil {
		return employees.CreateEmployeeInput{}, err
	} else if wage != nil {
		input.Wage = *wage
	}
	return input, nil
}

func employeeUpdateInput(r *http.Request) (employees.UpdateEmployeeInput, error) {
	if isJSONRequest(r) {
		var payload employeeUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return employees.UpdateEmployeeInput{}, err
		}
		return employees.UpdateEmployeeInput{
			Name:         trimPtr(payload.Name),
			DepartmentID: payload.DepartmentID,
			Title:        trimPtr(payload.Title),
			EmpNumber:    payload.EmpNumber,
			Address:      trimPtr(payload.Address),
			Phone:        trimPtr(payload.Phone),
			Wage:         payload.Wage,
			IsActive:     payload.IsActive,
		}, nil
	}

	if err := requirePutOverride(r); err != nil {
		return employees.UpdateEmployeeInput{}, err
	}

	departmentID, err := validators.FormSelectID(r, "department_name")
	if err != nil {
		return employees.UpdateEmployeeInput{}, err
	}
	wage, err := validators.FormOptionalInt(r, "wage")
	if err != nil {
		return employees.UpdateEmployeeInput{}, err
	}
	empNumber, err := validators.FormOptionalInt(r, "emp_number")
	if err != nil {
		return employees.UpdateEmployeeInput{}, err
	}

	input := employees.UpdateEmployeeInput{
		Name:         validators.FormOptionalString(r, "name"),
		DepartmentID: departmentID,
		Title:        validators.FormOptionalString(r, "title"),
		Address:      validators.FormOptionalString(r, "address"),
		Phone:        validators.FormOptionalString(r, "phone_number"),
		Wage:         wage,
	}
	if empNumber != nil {
		v := int64(*empNumber)
		input.EmpNumber = &v
	}
	// Edit forms always submit the checkbox state, so its value is
	// authoritative rather than optional.
	isActive := validators.FormCheckbox(r, "is_active")
	input.IsActive = &isActive
	return input, nil
}
