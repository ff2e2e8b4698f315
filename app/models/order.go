package models

import "time"

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
// Forward path: pending → processing → shipped → delivered.
// Cancellation is only possible before shipping.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderProcessing || next == OrderCancelled
	case OrderProcessing:
		return next == OrderShipped || next == OrderCancelled
	case OrderShipped:
		return next == OrderDelivered
	}
	return false
}

// OrderItem is a line of an order. Name and price are snapshotted at
// checkout so later catalogue edits never change a placed order.
type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"` // unit price at purchase time, yen
}

// Subtotal returns quantity × unit price.
func (i OrderItem) Subtotal() int { return i.Quantity * i.Price }

// Order is a placed order. The item list is immutable after creation;
// only Status and UpdatedAt change afterwards.
type Order struct {
	ID            string      `gorm:"primaryKey;size:64" json:"id"`
	CustomerName  string      `gorm:"size:255;not null" json:"customerName"`
	CustomerEmail string      `gorm:"size:255;not null;index" json:"customerEmail"`
	CustomerPhone string      `gorm:"size:64" json:"customerPhone"`
	ShippingTo    Address     `gorm:"embedded;embeddedPrefix:ship_" json:"customerAddress"`
	Items         []OrderItem `gorm:"serializer:json" json:"items"`
	TotalAmount   int         `gorm:"not null" json:"totalAmount"`
	Status        OrderStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
