package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/logger"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type productRepository interface {
	ListWithPlacement(ctx context.Context, page pagination.Params, perPage int) ([]WithPlacement, error)
	Find(ctx context.Context, id int) (*models.Product, error)
	NextIDWithTx(tx *gorm.DB) (int, error)
	CreateWithTx(tx *gorm.DB, row *models.Product) error
	UpdateWithTx(tx *gorm.DB, row *models.Product) error
	Placement(ctx context.Context, productID int) (*models.AisleContains, error)
	CreatePlacement(ctx context.Context, row *models.AisleContains) error
	MovePlacementWithTx(tx *gorm.DB, productID, aisleNumber int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes product operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]WithPlacement, error)
	Find(ctx context.Context, id int) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*CreateResult, error)
	Update(ctx context.Context, id int, input UpdateProductInput) (*ProductDTO, error)
}

type service struct {
	repo    productRepository
	tx      txRunner
	logg    *logger.Logger
	perPage int
}

// NewService builds a product service.
func NewService(repo productRepository, tx txRunner, logg *logger.Logger, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg, perPage: perPage}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]WithPlacement, error) {
	rows, err := s.repo.ListWithPlacement(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no products found")
	}
	return rows, nil
}

func (s *service) Find(ctx context.Context, id int) (*ProductDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(row), nil
}

// Create inserts the product, then attempts the aisle placement as a
// second, independent write. A placement failure never rolls back the
// product; it is reported in the result instead.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*CreateResult, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	var row *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		id, err := s.repo.NextIDWithTx(tx)
		if err != nil {
			return err
		}
		row = &models.Product{
			ID:               id,
			Name:             strings.TrimSpace(input.Name),
			PricePerCostUnit: input.PricePerCostUnit,
			CostUnit:         input.CostUnit,
			DepartmentID:     input.DepartmentID,
			QuantityInStock:  input.QuantityInStock,
			Brand:            input.Brand,
			ProductionDate:   input.ProductionDate,
			BestBeforeDate:   input.BestBeforeDate,
			PLU:              input.PLU,
			UPC:              input.UPC,
			Organic:          input.Organic,
			Cut:              input.Cut,
			Animal:           input.Animal,
		}
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "department does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	result := &CreateResult{Product: FromModel(row)}
	if input.AisleNumber != nil {
		placement := &models.AisleContains{AisleNumber: *input.AisleNumber, ProductID: row.ID}
		if err := s.repo.CreatePlacement(ctx, placement); err != nil {
			logCtx := s.logg.WithResource(ctx, "product")
			logCtx = s.logg.WithField(logCtx, "product_id", row.ID)
			s.logg.Error(logCtx, "product created but aisle placement failed", err)
			result.PlacementErr = pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, "place product in aisle")
		}
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateProductInput) (*ProductDTO, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyUpdate(row, input)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateWithTx(tx, row); err != nil {
			return err
		}
		if input.AisleNumber != nil {
			return s.repo.MovePlacementWithTx(tx, row.ID, *input.AisleNumber)
		}
		return nil
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "department or aisle does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(row), nil
}

func validateCreate(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.PricePerCostUnit.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if strings.TrimSpace(input.CostUnit) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost unit is required")
	}
	if input.DepartmentID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "department is required")
	}
	return nil
}

func applyUpdate(row *models.Product, input UpdateProductInput) {
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.PricePerCostUnit != nil {
		row.PricePerCostUnit = *input.PricePerCostUnit
	}
	if input.CostUnit != nil && *input.CostUnit != "" {
		row.CostUnit = *input.CostUnit
	}
	if input.DepartmentID != nil && *input.DepartmentID > 0 {
		row.DepartmentID = *input.DepartmentID
	}
	if input.QuantityInStock != nil {
		row.QuantityInStock = *input.QuantityInStock
	}
	if input.Brand != nil {
		row.Brand = input.Brand
	}
	if input.ProductionDate != nil {
		row.ProductionDate = input.ProductionDate
	}
	if input.BestBeforeDate != nil {
		row.BestBeforeDate = input.BestBeforeDate
	}
	if input.PLU != nil {
		row.PLU = input.PLU
	}
	if input.UPC != nil {
		row.UPC = input.UPC
	}
	if input.Organic != nil {
		row.Organic = *input.Organic
	}
	if input.Cut != nil {
		row.Cut = input.Cut
	}
	if input.Animal != nil {
		row.Animal = input.Animal
	}
}
