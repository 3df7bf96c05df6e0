package products

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/logger"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type stubRepo struct {
	rows         []WithPlacement
	found        *models.Product
	findErr      error
	nextID       int
	created      *models.Product
	updated      *models.Product
	placement    *models.AisleContains
	placementErr error
	moved        []int
}

func (s *stubRepo) ListWithPlacement(_ context.Context, _ pagination.Params, _ int) ([]WithPlacement, error) {
	return s.rows, nil
}

func (s *stubRepo) Find(_ context.Context, _ int) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubRepo) NextIDWithTx(_ *gorm.DB) (int, error) { return s.nextID, nil }

func (s *stubRepo) CreateWithTx(_ *gorm.DB, row *models.Product) error {
	s.created = row
	return nil
}

func (s *stubRepo) UpdateWithTx(_ *gorm.DB, row *models.Product) error {
	s.updated = row
	return nil
}

func (s *stubRepo) Placement(_ context.Context, _ int) (*models.AisleContains, error) {
	return s.placement, nil
}

func (s *stubRepo) CreatePlacement(_ context.Context, row *models.AisleContains) error {
	if s.placementErr != nil {
		return s.placementErr
	}
	s.placement = row
	return nil
}

func (s *stubRepo) MovePlacementWithTx(_ *gorm.DB, productID, aisleNumber int) error {
	s.moved = append(s.moved, aisleNumber)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, passthroughTx{}, logg, 25)
	require.NoError(t, err)
	return svc
}

func validCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:             "Fuji Apple",
		PricePerCostUnit: decimal.NewFromFloat(1.99),
		CostUnit:         "lb",
		DepartmentID:     1,
		QuantityInStock:  40,
	}
}

func TestCreateWithoutAisleSkipsPlacement(t *testing.T) {
	repo := &stubRepo{nextID: 5}
	svc := newTestService(t, repo)

	result, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Product.ID)
	assert.NoError(t, result.PlacementErr)
	assert.Nil(t, repo.placement)
}

func TestCreatePlacesProductWhenAisleGiven(t *testing.T) {
	repo := &stubRepo{nextID: 5}
	svc := newTestService(t, repo)

	input := validCreateInput()
	aisle := 3
	input.AisleNumber = &aisle

	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, repo.placement)
	assert.Equal(t, 3, repo.placement.AisleNumber)
	assert.Equal(t, 5, repo.placement.ProductID)
	assert.NoError(t, result.PlacementErr)
}

func TestCreateSurvivesPlacementFailure(t *testing.T) {
	repo := &stubRepo{nextID: 5, placementErr: errors.New("no such aisle")}
	svc := newTestService(t, repo)

	input := validCreateInput()
	aisle := 99
	input.AisleNumber = &aisle

	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	// product landed even though the placement did not
	require.NotNil(t, repo.created)
	assert.Equal(t, 5, result.Product.ID)
	require.Error(t, result.PlacementErr)
	typed := pkgerrors.As(result.PlacementErr)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, &stubRepo{})

	cases := []struct {
		name  string
		patch func(*CreateProductInput)
	}{
		{"missing name", func(in *CreateProductInput) { in.Name = " " }},
		{"negative price", func(in *CreateProductInput) { in.PricePerCostUnit = decimal.NewFromInt(-1) }},
		{"missing cost unit", func(in *CreateProductInput) { in.CostUnit = "" }},
		{"missing department", func(in *CreateProductInput) { in.DepartmentID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.patch(&input)
			_, err := svc.Create(context.Background(), input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestUpdateMovesPlacementWhenAisleChanges(t *testing.T) {
	repo := &stubRepo{found: &models.Product{
		ID: 2, Name: "Banana", CostUnit: "lb", DepartmentID: 1,
		PricePerCostUnit: decimal.NewFromFloat(0.59),
	}}
	svc := newTestService(t, repo)

	aisle := 7
	_, err := svc.Update(context.Background(), 2, UpdateProductInput{AisleNumber: &aisle})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, repo.moved)
}

func TestUpdateFallsBackToStoredFields(t *testing.T) {
	price := decimal.NewFromFloat(0.59)
	repo := &stubRepo{found: &models.Product{
		ID: 2, Name: "Banana", CostUnit: "lb", DepartmentID: 1,
		PricePerCostUnit: price, QuantityInStock: 80, Organic: 1,
	}}
	svc := newTestService(t, repo)

	quantity := 60
	dto, err := svc.Update(context.Background(), 2, UpdateProductInput{QuantityInStock: &quantity})
	require.NoError(t, err)
	assert.Equal(t, "Banana", dto.Name)
	assert.True(t, dto.PricePerCostUnit.Equal(price))
	assert.Equal(t, 60, dto.QuantityInStock)
	assert.Equal(t, 1, dto.Organic)
	assert.Empty(t, repo.moved)
}

func TestUpdateMissingProductIsUnprocessable(t *testing.T) {
	svc := newTestService(t, &stubRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Update(context.Background(), 404, UpdateProductInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}

func TestListEmptyIsUnprocessable(t *testing.T) {
	svc := newTestService(t, &stubRepo{})

	_, err := svc.List(context.Background(), pagination.Params{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}
