package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type employeeRepository interface {
	ListWithDepartment(ctx context.Context, page pagination.Params, perPage int) ([]WithDepartment, error)
	Find(ctx context.Context, id int) (*models.Employee, error)
	NextIDWithTx(tx *gorm.DB) (int, error)
	CreateWithTx(tx *gorm.DB, row *models.Employee) error
	UpdateWithTx(tx *gorm.DB, row *models.Employee) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes employee operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]WithDepartment, error)
	Find(ctx context.Context, id int) (*EmployeeDTO, error)
	Create(ctx context.Context, input CreateEmployeeInput) (*EmployeeDTO, error)
	Update(ctx context.Context, id int, input UpdateEmployeeInput) (*EmployeeDTO, error)
}

type service struct {
	repo    employeeRepository
	tx      txRunner
	perPage int
}

// NewService builds an employee service.
func NewService(repo employeeRepository, tx txRunner, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employee repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, perPage: perPage}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]WithDepartment, error) {
	rows, err := s.repo.ListWithDepartment(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list employees")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no employees found")
	}
	return rows, nil
}

func (s *service) Find(ctx context.Context, id int) (*EmployeeDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load employee")
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, input CreateEmployeeInput) (*EmployeeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name is required")
	}
	if input.DepartmentID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "department is required")
	}

	var row *models.Employee
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		id, err := s.repo.NextIDWithTx(tx)
		if err != nil {
			return err
		}
		row = &models.Employee{
			ID:           id,
			Name:         name,
			DepartmentID: input.DepartmentID,
			Title:        input.Title,
			EmpNumber:    input.EmpNumber,
			Address:      input.Address,
			Phone:        input.Phone,
			Wage:         input.Wage,
			IsActive:     input.IsActive,
		}
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "department does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create employee")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateEmployeeInput) (*EmployeeDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load employee")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.DepartmentID != nil && *input.DepartmentID > 0 {
		row.DepartmentID = *input.DepartmentID
	}
	if input.Title != nil {
		row.Title = *input.Title
	}
	if input.EmpNumber != nil {
		row.EmpNumber = *input.EmpNumber
	}
	if input.Address != nil {
		row.Address = *input.Address
	}
	if input.Phone != nil {
		row.Phone = *input.Phone
	}
	if input.Wage != nil {
		row.Wage = *input.Wage
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateWithTx(tx, row)
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "department does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update employee")
	}
	return FromModel(row), nil
}
