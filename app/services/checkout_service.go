package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/shashiranjanraj/ameya/app/jobs"
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/config"
	"github.com/shashiranjanraj/ameya/pkg/collection"
	"github.com/shashiranjanraj/ameya/pkg/event"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/queue"
)

// EventOrderCreated fires after an order is durably stored. Payload: models.Order.
const EventOrderCreated = "order.created"

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// CheckoutInput is the validated customer/shipping form.
type CheckoutInput struct {
	Name    string         `json:"name" validate:"required,max=255"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   string         `json:"phone" validate:"required,max=64"`
	Address models.Address `json:"address"`
}

// CheckoutService turns the current cart into an order.
type CheckoutService struct {
	orders *repositories.OrderRepository
	cart   *state.CartContext
}

func NewCheckoutService(orders *repositories.OrderRepository, cart *state.CartContext) *CheckoutService {
	return &CheckoutService{orders: orders, cart: cart}
}

// NewOrderID builds an order key: order-<unix millis>-<9 base36 chars>.
func NewOrderID() string {
	return fmt.Sprintf("order-%d-%s", time.Now().UnixMilli(), randBase36(9))
}

func randBase36(n int) string {
	s := strconv.FormatInt(rand.Int63(), 36)
	for len(s) < n {
		s += strconv.FormatInt(rand.Int63(), 36)
	}
	return s[:n]
}

// PlaceOrder snapshots the cart into a pending order, persists it and
// clears the cart. Item names and prices are copied from the cart join,
// never re-derived later; stale lines snapshot as name "" and price 0,
// exactly what the cart already charged for them.
func (s *CheckoutService) PlaceOrder(in CheckoutInput) (models.Order, error) {
	cart := s.cart.State()
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := collection.Map(cart.Items, func(line state.CartLine) models.OrderItem {
		item := models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if line.Product != nil {
			item.ProductName = line.Product.Name
			item.Price = line.Product.Price
		}
		return item
	})

	now := time.Now()
	order := models.Order{
		ID:            NewOrderID(),
		CustomerName:  in.Name,
		CustomerEmail: in.Email,
		CustomerPhone: in.Phone,
		ShippingTo:    in.Address,
		Items:         items,
		TotalAmount:   cart.TotalAmount,
		Status:        models.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Add(&order); err != nil {
		return models.Order{}, fmt.Errorf("checkout: store order: %w", err)
	}

	// The order is durable; a cart-clear failure must not undo it.
	if err := s.cart.Clear(); err != nil {
		logger.Error("checkout: clear cart after order", "order_id", order.ID, "error", err)
	}

	event.Fire(EventOrderCreated, order)

	if err := queue.Dispatch(&jobs.OrderConfirmation{
		OrderID: order.ID,
		Email:   order.CustomerEmail,
		Name:    order.CustomerName,
		Total:   order.TotalAmount,
	}); err != nil {
		logger.Warn("checkout: queue confirmation mail", "order_id", order.ID, "error", err)
	}

	if config.Get("SLACK_WEBHOOK_URL", "") != "" {
		if err := queue.Dispatch(&jobs.StaffOrderAlert{
			OrderID:   order.ID,
			Customer:  order.CustomerName,
			Total:     order.TotalAmount,
			ItemCount: len(items),
		}); err != nil {
			logger.Warn("checkout: queue staff alert", "order_id", order.ID, "error", err)
		}
	}

	logger.Info("order placed", "order_id", order.ID, "total", order.TotalAmount, "items", len(items))
	return order, nil
}
