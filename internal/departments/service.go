package departments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type departmentRepository interface {
	List(ctx context.Context, page pagination.Params, perPage int) ([]models.Department, error)
	Find(ctx context.Context, id int) (*models.Department, error)
	NextIDWithTx(tx *gorm.DB) (int, error)
	CreateWithTx(tx *gorm.DB, row *models.Department) error
	UpdateWithTx(tx *gorm.DB, row *models.Department) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes department operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]DepartmentDTO, error)
	Find(ctx context.Context, id int) (*DepartmentDTO, error)
	Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error)
	Update(ctx context.Context, id int, input UpdateDepartmentInput) (*DepartmentDTO, error)
}

type service struct {
	repo    departmentRepository
	tx      txRunner
	perPage int
}

// NewService builds a department service.
func NewService(repo departmentRepository, tx txRunner, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("department repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, perPage: perPage}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]DepartmentDTO, error) {
	rows, err := s.repo.List(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list departments")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no departments found")
	}
	return FromModels(rows), nil
}

func (s *service) Find(ctx context.Context, id int) (*DepartmentDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "department not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load department")
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "department name is required")
	}

	var row *models.Department
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		id, err := s.repo.NextIDWithTx(tx)
		if err != nil {
			return err
		}
		row = &models.Department{ID: id, Name: name}
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create department")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateDepartmentInput) (*DepartmentDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "department not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load department")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		row.Name = strings.TrimSpace(*input.Name)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update department")
	}
	return FromModel(row), nil
}
