package employees

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db/models"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Department{}, &models.Employee{}))
	return conn
}

func TestListWithDepartmentOrdersByDepartmentID(t *testing.T) {
	conn := newTestDB(t)
	// Name order (Bakery < Produce) disagrees with id order on purpose:
	// the listing sorts by department id, not name.
	require.NoError(t, conn.Create(&[]models.Department{
		{ID: 1, Name: "Produce"},
		{ID: 2, Name: "Bakery"},
	}).Error)
	require.NoError(t, conn.Create(&[]models.Employee{
		{ID: 3, Name: "Casey", DepartmentID: 1, EmpNumber: 103, IsActive: true},
		{ID: 1, Name: "Alex", DepartmentID: 2, EmpNumber: 101, IsActive: true},
		{ID: 2, Name: "Blair", DepartmentID: 1, EmpNumber: 102, IsActive: true},
	}).Error)
	repo := NewRepository(conn)

	rows, err := repo.ListWithDepartment(context.Background(), pagination.Params{}, 25)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Produce", rows[0].DepartmentName)
	assert.Equal(t, 2, rows[0].ID)
	assert.Equal(t, 3, rows[1].ID)
	assert.Equal(t, "Bakery", rows[2].DepartmentName)
	assert.Equal(t, 1, rows[2].ID)
}

func TestListWithDepartmentSkipsOrphans(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, conn.Create(&models.Employee{
		ID: 1, Name: "Ghost", DepartmentID: 99, EmpNumber: 100,
	}).Error)
	repo := NewRepository(conn)

	rows, err := repo.ListWithDepartment(context.Background(), pagination.Params{}, 25)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
