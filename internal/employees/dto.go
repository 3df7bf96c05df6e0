package employees

import "github.com/minliz/udacimarket-backend/pkg/db/models"

// EmployeeDTO exposes an employee row in API responses.
type EmployeeDTO struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
	Title        string `json:"title"`
	EmpNumber    int64  `json:"emp_number"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Wage         int    `json:"wage"`
	IsActive     bool   `json:"is_active"`
}

// WithDepartment is the listing row: the employee joined with the name of
// its department.
type WithDepartment struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	DepartmentID   int    `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Title          string `json:"title"`
	EmpNumber      int64  `json:"emp_number"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Wage           int    `json:"wage"`
	IsActive       bool   `json:"is_active"`
}

// CreateEmployeeInput holds creation-time fields.
type CreateEmployeeInput struct {
	Name         string
	DepartmentID int
	Title        string
	EmpNumber    int64
	Address      string
	Phone        string
	Wage         int
	IsActive     bool
}

// UpdateEmployeeInput carries optional replacements; nil fields keep the
// stored value.
type UpdateEmployeeInput struct {
	Name         *string
	DepartmentID *int
	Title        *string
	EmpNumber    *int64
	Address      *string
	Phone        *string
	Wage         *int
	IsActive     *bool
}

// FromModel maps the persisted employee into a DTO.
func FromModel(m *models.Employee) *EmployeeDTO {
	if m == nil {
		return nil
	}
	return &EmployeeDTO{
		ID:           m.ID,
		Name:         m.Name,
		DepartmentID: m.DepartmentID,
		Title:        m.Title,
		EmpNumber:    m.EmpNumber,
		Address:      m.Address,
		Phone:        m.Phone,
		Wage:         m.Wage,
		IsActive:     m.IsActive,
	}
}
