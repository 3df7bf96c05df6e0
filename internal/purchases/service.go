package purchases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type purchaseRepository interface {
	ListWithNames(ctx context.Context, page pagination.Params, perPage int) ([]WithNames, error)
	Find(ctx context.Context, id int) (*models.Purchase, error)
	NextIDWithTx(tx *gorm.DB) (int, error)
	CreateWithTx(tx *gorm.DB, row *models.Purchase) error
	UpdateWithTx(tx *gorm.DB, row *models.Purchase) error
}

type productFinder interface {
	Find(ctx context.Context, id int) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
}

type customerFinder interface {
	FindByName(ctx context.Context, name string) (*models.Customer, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes purchase operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]WithNames, error)
	Find(ctx context.Context, id int) (*PurchaseDTO, error)
	Create(ctx context.Context, input CreatePurchaseInput) (*PurchaseDTO, error)
	Update(ctx context.Context, id int, input UpdatePurchaseInput) (*PurchaseDTO, error)
}

type service struct {
	repo      purchaseRepository
	products  productFinder
	customers customerFinder
	tx        txRunner
	perPage   int
}

// NewService builds a purchase service.
func NewService(repo purchaseRepository, products productFinder, customers customerFinder, tx txRunner, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		products:  products,
		customers: customers,
		tx:        tx,
		perPage:   perPage,
	}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]WithNames, error) {
	rows, err := s.repo.ListWithNames(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no purchases found")
	}
	return rows, nil
}

func (s *service) Find(ctx context.Context, id int) (*PurchaseDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "purchase not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase")
	}
	return FromModel(row), nil
}

// Create resolves the product and customer by name, prices the line at the
// product's current price, and records the purchase.
func (s *service) Create(ctx context.Context, input CreatePurchaseInput) (*PurchaseDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByName(ctx, strings.TrimSpace(input.ProductName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve product")
	}

	customer, err := s.customers.FindByName(ctx, strings.TrimSpace(input.CustomerName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customer")
	}

	var row *models.Purchase
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		id, err := s.repo.NextIDWithTx(tx)
		if err != nil {
			return err
		}
		row = &models.Purchase{
			ID:           id,
			ProductID:    product.ID,
			Quantity:     input.Quantity,
			CustomerID:   customer.ID,
			PurchaseDate: input.PurchaseDate,
			Total:        lineTotal(product.PricePerCostUnit, input.Quantity),
			IsCancelled:  false,
		}
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, id int, input UpdatePurchaseInput) (*PurchaseDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "purchase not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase")
	}

	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		product, err := s.products.Find(ctx, row.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product for repricing")
		}
		row.Quantity = *input.Quantity
		row.Total = lineTotal(product.PricePerCostUnit, *input.Quantity)
	}
	if input.PurchaseDate != nil {
		row.PurchaseDate = input.PurchaseDate
	}
	if input.IsCancelled != nil {
		row.IsCancelled = *input.IsCancelled
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase")
	}
	return FromModel(row), nil
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
