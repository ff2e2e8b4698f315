package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/pkg/event"
)

func seedOrder(t *testing.T, id string, status models.OrderStatus, total int) models.Order {
	t.Helper()
	now := time.Now()
	order := models.Order{
		ID:            id,
		CustomerName:  "太郎",
		CustomerEmail: "taro@example.com",
		Items: []models.OrderItem{
			{ProductID: "gummy-001", ProductName: "グミ", Quantity: 1, Price: total},
		},
		TotalAmount: total,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repositories.NewOrderRepository().Add(&order))
	return order
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	setupDB(t)
	event.Flush()
	svc := services.NewOrderService(repositories.NewOrderRepository())
	seedOrder(t, "order-1", models.OrderPending, 280)

	for _, next := range []models.OrderStatus{
		models.OrderProcessing, models.OrderShipped, models.OrderDelivered,
	} {
		order, err := svc.UpdateStatus("order-1", next)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}
}

func TestUpdateStatusRejectsSkippingAhead(t *testing.T) {
	setupDB(t)
	event.Flush()
	svc := services.NewOrderService(repositories.NewOrderRepository())
	seedOrder(t, "order-1", models.OrderPending, 280)

	_, err := svc.UpdateStatus("order-1", models.OrderDelivered)
	assert.Error(t, err)

	stored, err := repositories.NewOrderRepository().FindByID("order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestCancelOnlyBeforeShipping(t *testing.T) {
	setupDB(t)
	event.Flush()
	svc := services.NewOrderService(repositories.NewOrderRepository())

	seedOrder(t, "order-1", models.OrderProcessing, 280)
	_, err := svc.UpdateStatus("order-1", models.OrderCancelled)
	assert.NoError(t, err)

	seedOrder(t, "order-2", models.OrderShipped, 280)
	_, err = svc.UpdateStatus("order-2", models.OrderCancelled)
	assert.Error(t, err)
}

func TestUpdateStatusKeepsItemsAndTotal(t *testing.T) {
	setupDB(t)
	event.Flush()
	svc := services.NewOrderService(repositories.NewOrderRepository())
	original := seedOrder(t, "order-1", models.OrderPending, 430)

	updated, err := svc.UpdateStatus("order-1", models.OrderProcessing)
	require.NoError(t, err)

	assert.Equal(t, original.TotalAmount, updated.TotalAmount)
	assert.Equal(t, original.Items, updated.Items)
	assert.Equal(t, original.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	setupDB(t)
	event.Flush()
	svc := services.NewOrderService(repositories.NewOrderRepository())
	seedOrder(t, "order-1", models.OrderPending, 280)

	_, err := svc.UpdateStatus("order-1", models.OrderStatus("teleported"))
	assert.Error(t, err)
}
