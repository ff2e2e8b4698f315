package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
)

func seedOrderWithItems(t *testing.T, id string, status models.OrderStatus, items []models.OrderItem) {
	t.Helper()
	total := 0
	for _, item := range items {
		total += item.Subtotal()
	}
	now := time.Now()
	require.NoError(t, repositories.NewOrderRepository().Add(&models.Order{
		ID:            id,
		CustomerEmail: "taro@example.com",
		Items:         items,
		TotalAmount:   total,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
}

func TestAnalyticsEmptyStore(t *testing.T) {
	setupDB(t)
	svc := services.NewAnalyticsService(
		repositories.NewOrderRepository(),
		repositories.NewProductRepository(),
	)

	report, err := svc.Build()
	require.NoError(t, err)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.AverageOrderValue)
	// Both categories and all five statuses are always present.
	assert.Len(t, report.ByCategory, 2)
	assert.Len(t, report.ByStatus, 5)
	assert.Empty(t, report.TopProducts)
}

func TestAnalyticsExcludesCancelledRevenue(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 50)
	seedProduct(t, "candy-001", models.CategoryCandy, 200, 40)
	svc := services.NewAnalyticsService(
		repositories.NewOrderRepository(),
		repositories.NewProductRepository(),
	)

	seedOrderWithItems(t, "order-1", models.OrderDelivered, []models.OrderItem{
		{ProductID: "gummy-001", ProductName: "グミ", Quantity: 2, Price: 280},
	})
	seedOrderWithItems(t, "order-2", models.OrderCancelled, []models.OrderItem{
		{ProductID: "candy-001", ProductName: "飴", Quantity: 5, Price: 200},
	})

	report, err := svc.Build()
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 560, report.TotalRevenue)
	assert.InDelta(t, 280.0, report.AverageOrderValue, 0.001)

	statusCount := map[models.OrderStatus]int{}
	for _, s := range report.ByStatus {
		statusCount[s.Status] = s.Count
	}
	assert.Equal(t, 1, statusCount[models.OrderCancelled])
	assert.Equal(t, 1, statusCount[models.OrderDelivered])

	// The cancelled candy order must not appear in top products.
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "gummy-001", report.TopProducts[0].ProductID)
}

func TestAnalyticsTopProductsRankingAndCap(t *testing.T) {
	setupDB(t)
	svc := services.NewAnalyticsService(
		repositories.NewOrderRepository(),
		repositories.NewProductRepository(),
	)

	items := []models.OrderItem{
		{ProductID: "p-1", Quantity: 1, Price: 100},
		{ProductID: "p-2", Quantity: 9, Price: 100},
		{ProductID: "p-3", Quantity: 3, Price: 100},
		{ProductID: "p-4", Quantity: 3, Price: 100},
		{ProductID: "p-5", Quantity: 7, Price: 100},
		{ProductID: "p-6", Quantity: 2, Price: 100},
	}
	seedOrderWithItems(t, "order-1", models.OrderPending, items)

	report, err := svc.Build()
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 5)
	assert.Equal(t, "p-2", report.TopProducts[0].ProductID)
	assert.Equal(t, "p-5", report.TopProducts[1].ProductID)
	// Units tie between p-3 and p-4 breaks on the product key.
	assert.Equal(t, "p-3", report.TopProducts[2].ProductID)
	assert.Equal(t, "p-4", report.TopProducts[3].ProductID)
	assert.Equal(t, "p-6", report.TopProducts[4].ProductID)
}

func TestAnalyticsCategorySplit(t *testing.T) {
	setupDB(t)
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 50)
	seedProduct(t, "candy-001", models.CategoryCandy, 200, 40)
	svc := services.NewAnalyticsService(
		repositories.NewOrderRepository(),
		repositories.NewProductRepository(),
	)

	seedOrderWithItems(t, "order-1", models.OrderDelivered, []models.OrderItem{
		{ProductID: "gummy-001", Quantity: 1, Price: 280},
		{ProductID: "candy-001", Quantity: 1, Price: 200},
	})

	report, err := svc.Build()
	require.NoError(t, err)

	byCat := map[models.Category]services.CategorySlice{}
	for _, s := range report.ByCategory {
		byCat[s.Category] = s
	}
	assert.Equal(t, 280, byCat[models.CategoryGummy].Revenue)
	assert.Equal(t, 200, byCat[models.CategoryCandy].Revenue)
	assert.Equal(t, 1, byCat[models.CategoryGummy].Products)
	assert.InDelta(t, 280.0/480.0*100, byCat[models.CategoryGummy].Percentage, 0.001)
}
