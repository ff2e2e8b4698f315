package repositories

import (
	"errors"
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/orm"
	"gorm.io/gorm"
)

// CartRepository handles object-store operations for the cart.
// Entries are keyed by product, so no product ever appears twice.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// All returns the cart contents, oldest additions first.
func (r *CartRepository) All() ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := orm.DB().Model(&models.CartEntry{}).Order("added_at").Get(&entries)
	return entries, err
}

// Find looks up the entry for a product.
func (r *CartRepository) Find(productID string) (models.CartEntry, error) {
	var entry models.CartEntry
	err := orm.DB().Model(&models.CartEntry{}).Where("product_id = ?", productID).First(&entry)
	return entry, err
}

// Add puts quantity of a product into the cart. If the product is already
// there the quantities are merged instead of creating a duplicate entry.
func (r *CartRepository) Add(productID string, quantity int) error {
	existing, err := r.Find(productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		return orm.DB().Save(&existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return orm.DB().Create(&models.CartEntry{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	default:
		return err
	}
}

// UpdateQuantity replaces the quantity of an existing entry.
// Missing entries are ignored, matching the original storefront.
func (r *CartRepository) UpdateQuantity(productID string, quantity int) error {
	entry, err := r.Find(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	entry.Quantity = quantity
	return orm.DB().Save(&entry)
}

// Remove deletes the entry for a product.
func (r *CartRepository) Remove(productID string) error {
	return orm.DB().Where("product_id = ?", productID).Delete(&models.CartEntry{})
}

// Clear empties the cart.
func (r *CartRepository) Clear() error {
	return orm.DB().Where("1 = 1").Delete(&models.CartEntry{})
}
