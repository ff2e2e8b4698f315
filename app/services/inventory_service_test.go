package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
)

func TestStatusForBuckets(t *testing.T) {
	assert.Equal(t, services.StockOut, services.StatusFor(0))
	assert.Equal(t, services.StockLow, services.StatusFor(1))
	assert.Equal(t, services.StockLow, services.StatusFor(9))
	assert.Equal(t, services.StockWarn, services.StatusFor(10))
	assert.Equal(t, services.StockWarn, services.StatusFor(19))
	assert.Equal(t, services.StockOK, services.StatusFor(20))
}

func TestSetStockClampsNegative(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 5)
	svc := services.NewInventoryService(repositories.NewProductRepository())

	p, err := svc.SetStock("gummy-001", -3)
	require.NoError(t, err)
	assert.Zero(t, p.Stock)
}

func TestBulkAdjustClampsPerProduct(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 5)
	seedProduct(t, "candy-001", models.CategoryCandy, 200, 30)
	svc := services.NewInventoryService(repositories.NewProductRepository())

	products, err := svc.BulkAdjust(-10)
	require.NoError(t, err)

	byID := map[string]int{}
	for _, p := range products {
		byID[p.ID] = p.Stock
	}
	assert.Equal(t, 0, byID["gummy-001"])
	assert.Equal(t, 20, byID["candy-001"])
}

func TestInventorySummary(t *testing.T) {
	setupDB(t)
	seedProduct(t, "p-out", models.CategoryGummy, 100, 0)
	seedProduct(t, "p-low", models.CategoryGummy, 100, 4)
	seedProduct(t, "p-warn", models.CategoryGummy, 100, 15)
	seedProduct(t, "p-ok", models.CategoryCandy, 100, 40)
	svc := services.NewInventoryService(repositories.NewProductRepository())

	sum, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Products)
	assert.Equal(t, 1, sum.OutOfStock)
	assert.Equal(t, 1, sum.LowStock)
	assert.Equal(t, 1, sum.Healthy)
}
