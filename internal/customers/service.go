package customers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type customerRepository interface {
	List(ctx context.Context, page pagination.Params, perPage int) ([]models.Customer, error)
	Find(ctx context.Context, id int) (*models.Customer, error)
	NextIDWithTx(tx *gorm.DB) (int, error)
	CreateWithTx(tx *gorm.DB, row *models.Customer) error
	UpdateWithTx(tx *gorm.DB, row *models.Customer) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes customer operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]CustomerDTO, error)
	Find(ctx context.Context, id int) (*CustomerDTO, error)
	Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	Update(ctx context.Context, id int, input UpdateCustomerInput) (*CustomerDTO, error)
}

type service struct {
	repo    customerRepository
	tx      txRunner
	perPage int
}

// NewService builds a customer service.
func NewService(repo customerRepository, tx txRunner, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, perPage: perPage}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]CustomerDTO, error) {
	rows, err := s.repo.List(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no customers found")
	}
	return FromModels(rows), nil
}

func (s *service) Find(ctx context.Context, id int) (*CustomerDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	var row *models.Customer
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		id, err := s.repo.NextIDWithTx(tx)
		if err != nil {
			return err
		}
		row = &models.Customer{
			ID:    id,
			Name:  input.Name,
			Phone: input.Phone,
			Email: input.Email,
		}
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateCustomerInput) (*CustomerDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.Phone != nil {
		row.Phone = *input.Phone
	}
	if input.Email != nil {
		row.Email = *input.Email
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return FromModel(row), nil
}
