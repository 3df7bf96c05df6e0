package aisles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type stubRepo struct {
	rows      []models.Aisle
	found     *models.Aisle
	findErr   error
	deleteErr error
	calls     []string
}

func (s *stubRepo) List(_ context.Context, _ pagination.Params, _ int) ([]models.Aisle, error) {
	return s.rows, nil
}

func (s *stubRepo) Find(_ context.Context, _ int) (*models.Aisle, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubRepo) CreateWithTx(_ *gorm.DB, row *models.Aisle) error {
	s.calls = append(s.calls, "create")
	return nil
}

func (s *stubRepo) UpdateWithTx(_ *gorm.DB, row *models.Aisle) error {
	s.calls = append(s.calls, "update")
	return nil
}

func (s *stubRepo) DeletePlacementsWithTx(_ *gorm.DB, _ int) error {
	s.calls = append(s.calls, "delete-placements")
	return s.deleteErr
}

func (s *stubRepo) DeleteWithTx(_ *gorm.DB, _ int) error {
	s.calls = append(s.calls, "delete-aisle")
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func TestDeleteRemovesPlacementsBeforeAisle(t *testing.T) {
	repo := &stubRepo{found: &models.Aisle{AisleNumber: 3, Name: "Bakery"}}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, []string{"delete-placements", "delete-aisle"}, repo.calls)
}

func TestDeleteMissingAisleIsUnprocessable(t *testing.T) {
	svc, err := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound}, passthroughTx{}, 25)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 8)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}

func TestDeleteAbortsWhenPlacementsFail(t *testing.T) {
	repo := &stubRepo{
		found:     &models.Aisle{AisleNumber: 3, Name: "Bakery"},
		deleteErr: errors.New("constraint"),
	}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.NotContains(t, repo.calls, "delete-aisle")
}

func TestCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubRepo{}, passthroughTx{}, 25)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateAisleInput{AisleNumber: 0, Name: "Produce"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(context.Background(), CreateAisleInput{AisleNumber: 1, Name: "  "})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateKeepsNameWhenAbsent(t *testing.T) {
	repo := &stubRepo{found: &models.Aisle{AisleNumber: 5, Name: "Frozen"}}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	dto, err := svc.Update(context.Background(), 5, UpdateAisleInput{})
	require.NoError(t, err)
	assert.Equal(t, "Frozen", dto.Name)
}

func TestListEmptyIsUnprocessable(t *testing.T) {
	svc, err := NewService(&stubRepo{}, passthroughTx{}, 25)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), pagination.Params{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnprocessable, typed.Code())
}
