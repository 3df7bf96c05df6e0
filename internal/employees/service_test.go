package employees

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
	rows    []WithDepartment
	found   *models.Employee
	findErr error
	nextID  int
	created *models.Employee
	updated *models.Employee
}

func (s *stubRepo) ListWithDepartment(_ context.Context, _ pagination.Params, _ int) ([]WithDepartment, error) {
	return s.rows, nil
}

func (s *stubRepo) Find(_ context.Context, _ int) (*models.Employee, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubRepo) NextIDWithTx(_ *gorm.DB) (int, error) { return s.nextID, nil }

func (s *stubRepo) CreateWithTx(_ *gorm.DB, row *models.Employee) error {
	s.created = row
	return nil
}

func (s *stubRepo) UpdateWithTx(_ *gorm.DB, row *models.Employee) error {
	s.updated = row
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func TestCreateRequiresNameAndDepartment(t *testing.T) {
	svc, err := NewService(&stubRepo{}, passthroughTx{}, 25)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateEmployeeInput{DepartmentID: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(context.Background(), CreateEmployeeInput{Name: "Alex"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateAssignsReservedID(t *testing.T) {
	repo := &stubRepo{nextID: 17}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateEmployeeInput{
		Name: "Alex", DepartmentID: 2, EmpNumber: 4211, Wage: 18, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 17, dto.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(4211), repo.created.EmpNumber)
}

func TestUpdateFallsBackToStoredFields(t *testing.T) {
	repo := &stubRepo{found: &models.Employee{
		ID: 4, Name: "Blair", DepartmentID: 1, Title: "Clerk",
		EmpNumber: 9001, Wage: 15, IsActive: true,
	}}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	wage := 17
	dto, err := svc.Update(context.Background(), 4, UpdateEmployeeInput{Wage: &wage})
	require.NoError(t, err)
	assert.Equal(t, "Blair", dto.Name)
	assert.Equal(t, "Clerk", dto.Title)
	assert.Equal(t, 17, dto.Wage)
	assert.True(t, dto.IsActive)
}

func TestUpdateCanDeactivate(t *testing.T) {
	repo := &stubRepo{found: &models.Employee{ID: 4, Name: "Blair", DepartmentID: 1, IsActive: true}}
	svc, err := NewService(repo, passthroughTx{}, 25)
	require.NoError(t, err)

	active := false
	dto, err := svc.Update(context.Background(), 4, UpdateEmployeeInput{IsActive: &active})
	require.NoError(t, err)
	assert.False(t, dto.IsActive)
}

func TestUpdateMissingEmployeeIsUnprocessable(t *testing.T) {
	svc, err := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound}, passthroughTx{}, 25)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 123, UpdateEmployeeInput{})
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
