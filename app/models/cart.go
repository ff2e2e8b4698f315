package models

import "time"

// CartEntry is one product in the cart. Keyed by product so the same
// product can never appear twice; adding again merges quantities.
type CartEntry struct {
	ProductID string    `gorm:"primaryKey;size:64" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

func (CartEntry) TableName() string { return "cart_entries" }
