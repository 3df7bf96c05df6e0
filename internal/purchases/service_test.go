package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type stubRepo struct {
	rows    []WithNames
	found   *models.Purchase
	findErr error
	nextID  int
	created *models.Purchase
	updated *models.Purchase
}

func (s *stubRepo) ListWithNames(_ context.Context, _ pagination.Params, _ int) ([]WithNames, error) {
	return s.rows, nil
}

func (s *stubRepo) Find(_ context.Context, _ int) (*models.Purchase, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubRepo) NextIDWithTx(_ *gorm.DB) (int, error) { return s.nextID, nil }

func (s *stubRepo) CreateWithTx(_ *gorm.DB, row *models.Purchase) error {
	s.created = row
	return nil
}

func (s *stubRepo) UpdateWithTx(_ *gorm.DB, row *models.Purchase) error {
	s.updated = row
	return nil
}

type stubProducts struct {
	byName map[string]*models.Product
	byID   map[int]*models.Product
}

func (s stubProducts) Find(_ context.Context, id int) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s stubProducts) FindByName(_ context.Context, name string) (*models.Product, error) {
	if p, ok := s.byName[name]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCustomers struct {
	byName map[string]*models.Customer
}

func (s stubCustomers) FindByName(_ context.Context, name string) (*models.Customer, error) {
	if c, ok := s.byName[name]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func banana() *models.Product {
	return &models.Product{
		ID: 2, Name: "Banana", CostUnit: "lb", DepartmentID: 1,
		PricePerCostUnit: decimal.NewFromFloat(0.59),
	}
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	products := stubProducts{
		byName: map[string]*models.Product{"Banana": banana()},
		byID:   map[int]*models.Product{2: banana()},
	}
	customers := stubCustomers{byName: map[string]*models.Customer{
		"Amy Santiago": {ID: 1, Name: "Amy Santiago"},
	}}
	svc, err := NewService(repo, products, customers, passthroughTx{}, 25)
	require.NoError(t, err)
	return svc
}

func TestCreateResolvesNamesAndPricesLine(t *testing.T) {
	repo := &stubRepo{nextID: 31}
	svc := newTestService(t, repo)

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	dto, err := svc.Create(context.Background(), CreatePurchaseInput{
		ProductName:  "Banana",
		CustomerName: "Amy Santiago",
		Quantity:     3,
		PurchaseDate: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, 31, dto.ID)
	assert.Equal(t, 2, dto.ProductID)
	assert.Equal(t, 1, dto.CustomerID)
	assert.True(t, dto.Total.Equal(decimal.NewFromFloat(1.77)), "got %s", dto.Total)
	assert.False(t, dto.IsCancelled)
}

func TestCreateUnknownProductIsUnprocessable(t *testing.T) {
	svc := newTestService(t, &stubRepo{nextID: 1})

	_, err := svc.Create(context.Background(), CreatePurchaseInput{
		ProductName: "Durian", CustomerName: "Amy Santiago", Quantity: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}

func TestCreateUnknownCustomerIsUnprocessable(t *testing.T) {
	svc := newTestService(t, &stubRepo{nextID: 1})

	_, err := svc.Create(context.Background(), CreatePurchaseInput{
		ProductName: "Banana", CustomerName: "Nobody", Quantity: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(t, &stubRepo{})

	_, err := svc.Create(context.Background(), CreatePurchaseInput{
		ProductName: "Banana", CustomerName: "Amy Santiago", Quantity: 0,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateQuantityReprices(t *testing.T) {
	repo := &stubRepo{found: &models.Purchase{
		ID: 7, ProductID: 2, CustomerID: 1, Quantity: 3,
		Total: decimal.NewFromFloat(1.77),
	}}
	svc := newTestService(t, repo)

	quantity := 5
	dto, err := svc.Update(context.Background(), 7, UpdatePurchaseInput{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 5, dto.Quantity)
	assert.True(t, dto.Total.Equal(decimal.NewFromFloat(2.95)), "got %s", dto.Total)
}

func TestUpdateCanCancel(t *testing.T) {
	repo := &stubRepo{found: &models.Purchase{ID: 7, ProductID: 2, CustomerID: 1, Quantity: 3}}
	svc := newTestService(t, repo)

	cancelled := true
	dto, err := svc.Update(context.Background(), 7, UpdatePurchaseInput{IsCancelled: &cancelled})
	require.NoError(t, err)
	assert.True(t, dto.IsCancelled)
	assert.Equal(t, 3, dto.Quantity)
}

func TestUpdateMissingPurchaseIsUnprocessable(t *testing.T) {
	svc := newTestService(t, &stubRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Update(context.Background(), 99, UpdatePurchaseInput{})
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
