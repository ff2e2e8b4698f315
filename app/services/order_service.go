package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/pkg/event"
	"github.com/shashiranjanraj/ameya/pkg/logger"
)

// EventOrderStatusChanged fires after an admin status update. Payload: models.Order.
const EventOrderStatusChanged = "order.status_changed"

// OrderService covers the admin order operations. Creation lives in
// CheckoutService; here only the status may change.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// UpdateStatus moves an order along its lifecycle. The item list and
// total are immutable; only Status and UpdatedAt change.
func (s *OrderService) UpdateStatus(id string, next models.OrderStatus) (models.Order, error) {
	if !next.Valid() {
		return models.Order{}, fmt.Errorf("orders: unknown status %q", next)
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, fmt.Errorf("orders: update status: %w", err)
	}

	if !order.Status.CanTransitionTo(next) {
		return models.Order{}, fmt.Errorf("orders: cannot move %s from %s to %s", id, order.Status, next)
	}

	order.Status = next
	order.UpdatedAt = time.Now()

	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("orders: update status: %w", err)
	}

	event.Fire(EventOrderStatusChanged, order)
	logger.Info("order status changed", "order_id", id, "status", next)
	return order, nil
}
