package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/pkg/event"
)

func checkoutFixture(t *testing.T) (*services.CheckoutService, *state.CartContext, *repositories.OrderRepository) {
	t.Helper()
	orders := repositories.NewOrderRepository()
	cart := state.NewCartContext(
		repositories.NewCartRepository(),
		repositories.NewProductRepository(),
	)
	return services.NewCheckoutService(orders, cart), cart, orders
}

func sampleInput() services.CheckoutInput {
	return services.CheckoutInput{
		Name:  "太郎",
		Email: "taro@example.com",
		Phone: "090-1234-5678",
		Address: models.Address{
			PostalCode: "150-0001",
			Prefecture: "東京都",
			City:       "渋谷区",
			Street:     "神宮前1-2-3",
		},
	}
}

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	setupDB(t)
	event.Flush()
	seedProduct(t, "gummy-002", models.CategoryGummy, 150, 30)
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 50)
	svc, cart, orders := checkoutFixture(t)

	require.NoError(t, cart.Add("gummy-002", 2))
	require.NoError(t, cart.Add("gummy-001", 1))

	order, err := svc.PlaceOrder(sampleInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "order-"))
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 2*150+280, order.TotalAmount)
	require.Len(t, order.Items, 2)

	// Checkout empties the cart.
	assert.Empty(t, cart.State().Items)

	// The order is durable with the item snapshot intact.
	stored, err := orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, stored.TotalAmount)
	require.Len(t, stored.Items, 2)
	for _, item := range stored.Items {
		assert.NotEmpty(t, item.ProductName)
		assert.Positive(t, item.Price)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	setupDB(t)
	event.Flush()
	svc, _, _ := checkoutFixture(t)

	_, err := svc.PlaceOrder(sampleInput())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestPlaceOrderFiresCreatedEvent(t *testing.T) {
	setupDB(t)
	event.Flush()
	t.Cleanup(event.Flush)
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 50)
	svc, cart, _ := checkoutFixture(t)

	var fired []models.Order
	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		if o, ok := payload.(models.Order); ok {
			fired = append(fired, o)
		}
	})

	require.NoError(t, cart.Add("gummy-001", 1))
	order, err := svc.PlaceOrder(sampleInput())
	require.NoError(t, err)

	require.Len(t, fired, 1)
	assert.Equal(t, order.ID, fired[0].ID)
}

func TestPlaceOrderStaleLinePricesAtZero(t *testing.T) {
	setupDB(t)
	event.Flush()
	seedProduct(t, "gummy-001", models.CategoryGummy, 280, 50)
	seedProduct(t, "candy-001", models.CategoryCandy, 200, 40)
	svc, cart, _ := checkoutFixture(t)

	require.NoError(t, cart.Add("gummy-001", 2))
	require.NoError(t, cart.Add("candy-001", 1))

	require.NoError(t, repositories.NewProductRepository().Delete("gummy-001"))
	require.NoError(t, cart.Load())

	order, err := svc.PlaceOrder(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, 200, order.TotalAmount)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		if item.ProductID == "gummy-001" {
			assert.Zero(t, item.Price)
			assert.Empty(t, item.ProductName)
		}
	}
}
