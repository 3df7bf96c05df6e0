package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type stubRepo struct {
	rows    []models.Customer
	found   *models.Customer
	findErr error
	nextID  int
	created *models.Customer
	updated *models.Customer
}

func (s *stubRepo) List(_ context.Context, _ pagination.Params, _ int) ([]models.Customer, error) {
	return s.rows, nil
}

func (s *stubRepo) Find(_ context.Context, _ int) (*models.Customer, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubRepo) NextIDWithTx(_ *gorm.DB) (int, error) { return s.nextID, nil }

func (s *stubRepo) CreateWithTx(_ *gorm.DB, row *models.Customer) error {
	s.created = row
	return nil
}

func (s *stubRepo) UpdateWithTx(_ *gorm.DB, row *models.Customer) error {
	s.updated = row
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func TestCreateAllowsSparseRecords(t *testing.T) {
	repo := &stubRepo{nextID: 11}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateCustomerInput{})
	require.NoError(t, err)
	assert.Equal(t, 11, dto.ID)
	assert.Empty(t, dto.Name)
}

func TestUpdateFallsBackPerField(t *testing.T) {
	repo := &stubRepo{found: &models.Customer{
		ID: 5, Name: "Terry Jeffords", Phone: "555-0199", Email: "terry@example.com",
	}}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	phone := "555-0200"
	dto, err := svc.Update(context.Background(), 5, UpdateCustomerInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Terry Jeffords", dto.Name)
	assert.Equal(t, "555-0200", dto.Phone)
	assert.Equal(t, "terry@example.com", dto.Email)
}

func TestUpdateMissingCustomerIsUnprocessable(t *testing.T) {
	svc, err := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound}, passthroughTx{}, 25)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 404, UpdateCustomerInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}

func TestListEmptyIsUnprocessable(t *testing.T) {
	svc, err := NewService(&stubRepo{}, passthroughTx{}, 25)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), pagination.Params{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}
