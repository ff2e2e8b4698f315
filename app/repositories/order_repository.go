package repositories

import (
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/orm"
)

// OrderRepository handles object-store operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// All returns every order, oldest first.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).Order("created_at").Get(&orders)
	return orders, err
}

// FindByID looks up an order by key.
func (r *OrderRepository) FindByID(id string) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Where("id = ?", id).First(&order)
	return order, err
}

// FindByStatus returns all orders in a lifecycle state (secondary index read).
func (r *OrderRepository) FindByStatus(s models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).Where("status = ?", s).Get(&orders)
	return orders, err
}

// FindByCustomerEmail returns a customer's order history, newest first.
func (r *OrderRepository) FindByCustomerEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("customer_email = ?", email).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// Add inserts a new order and fails if the key already exists.
func (r *OrderRepository) Add(o *models.Order) error {
	return orm.DB().Create(o)
}

// Update upserts the full order record.
func (r *OrderRepository) Update(o *models.Order) error {
	return orm.DB().Save(o)
}

// Delete removes an order by key.
func (r *OrderRepository) Delete(id string) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Order{})
}
