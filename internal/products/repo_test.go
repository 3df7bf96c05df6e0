package products

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
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
	require.NoError(t, conn.AutoMigrate(
		&models.Department{}, &models.Aisle{},
		&models.Product{}, &models.AisleContains{},
	))
	return conn
}

func seedCatalog(t *testing.T, conn *gorm.DB) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Department{ID: 1, Name: "Produce"}).Error)
	require.NoError(t, conn.Create(&models.Aisle{AisleNumber: 3, Name: "Fresh"}).Error)

	plu := 4131
	picked := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, conn.Create(&[]models.Product{
		{
			ID: 1, Name: "Fuji Apple", CostUnit: "lb", DepartmentID: 1,
			PricePerCostUnit: decimal.NewFromFloat(1.99), QuantityInStock: 40,
			Organic: 1, PLU: &plu, ProductionDate: &picked,
		},
		{
			ID: 2, Name: "Banana", CostUnit: "lb", DepartmentID: 1,
			PricePerCostUnit: decimal.NewFromFloat(0.59), QuantityInStock: 80,
		},
	}).Error)
	require.NoError(t, conn.Create(&models.AisleContains{AisleNumber: 3, ProductID: 1}).Error)
}

func TestListWithPlacementExcludesUnplacedProducts(t *testing.T) {
	conn := newTestDB(t)
	seedCatalog(t, conn)
	repo := NewRepository(conn)

	// Banana has no placement row, so the strict join leaves it out.
	rows, err := repo.ListWithPlacement(context.Background(), pagination.Params{}, 25)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	placed := rows[0]
	assert.Equal(t, "Fuji Apple", placed.Name)
	assert.Equal(t, "Produce", placed.DepartmentName)
	assert.Equal(t, 3, placed.AisleNumber)
	assert.Equal(t, "Fresh", placed.AisleName)
}

func TestListWithPlacementCarriesFullProductRow(t *testing.T) {
	conn := newTestDB(t)
	seedCatalog(t, conn)
	repo := NewRepository(conn)

	rows, err := repo.ListWithPlacement(context.Background(), pagination.Params{}, 25)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1, row.Organic)
	require.NotNil(t, row.PLU)
	assert.Equal(t, 4131, *row.PLU)
	require.NotNil(t, row.ProductionDate)
	assert.Equal(t, 2026, row.ProductionDate.Year())
	assert.Nil(t, row.UPC)
	assert.Nil(t, row.Cut)
	assert.Nil(t, row.Animal)
}

func TestMovePlacementReplacesRow(t *testing.T) {
	conn := newTestDB(t)
	seedCatalog(t, conn)
	require.NoError(t, conn.Create(&models.Aisle{AisleNumber: 7, Name: "Endcap"}).Error)
	repo := NewRepository(conn)

	tx := conn.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, repo.MovePlacementWithTx(tx, 1, 7))
	require.NoError(t, tx.Commit().Error)

	placement, err := repo.Placement(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, placement.AisleNumber)

	var count int64
	require.NoError(t, conn.Model(&models.AisleContains{}).Where("product_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindByName(t *testing.T) {
	conn := newTestDB(t)
	seedCatalog(t, conn)
	repo := NewRepository(conn)

	row, err := repo.FindByName(context.Background(), "Banana")
	require.NoError(t, err)
	assert.Equal(t, 2, row.ID)

	_, err = repo.FindByName(context.Background(), "Durian")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
