package suppliers

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

type supplierRepository interface {
	List(ctx context.Context, page pagination.Params, perPage int) ([]models.Supplier, error)
	Find(ctx context.Context, id int) (*models.Supplier, error)
	NextIDWithTx(tx *gorm.DB) (int, error)
	CreateWithTx(tx *gorm.DB, row *models.Supplier) error
	UpdateWithTx(tx *gorm.DB, row *models.Supplier) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes supplier operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]SupplierDTO, error)
	Find(ctx context.Context, id int) (*SupplierDTO, error)
	Create(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error)
	Update(ctx context.Context, id int, input UpdateSupplierInput) (*SupplierDTO, error)
}

type service struct {
	repo    supplierRepository
	tx      txRunner
	perPage int
}

// NewService builds a supplier service.
func NewService(repo supplierRepository, tx txRunner, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, perPage: perPage}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]SupplierDTO, error) {
	rows, err := s.repo.List(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no suppliers found")
	}
	return FromModels(rows), nil
}

func (s *service) Find(ctx context.Context, id int) (*SupplierDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	var row *models.Supplier
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		id, err := s.repo.NextIDWithTx(tx)
		if err != nil {
			return err
		}
		row = &models.Supplier{
			ID:      id,
			Name:    strings.TrimSpace(input.Name),
			Address: input.Address,
			Phone:   input.Phone,
		}
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateSupplierInput) (*SupplierDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		row.Address = *input.Address
	}
	if input.Phone != nil {
		row.Phone = *input.Phone
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier")
	}
	return FromModel(row), nil
}
