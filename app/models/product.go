package models

import "time"

// Category is the product category. The shop sells exactly two kinds of sweets.
type Category string

const (
	CategoryGummy Category = "gummy"
	CategoryCandy Category = "candy"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryGummy || c == CategoryCandy
}

// Product represents a product in the catalogue.
// Keys are caller-assigned strings (e.g. "gummy-001"), never auto-increment.
type Product struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int       `gorm:"not null" json:"price"` // yen, whole units
	Category    Category  `gorm:"size:16;not null;index" json:"category"`
	ImageURL    string    `gorm:"size:255" json:"imageUrl"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
