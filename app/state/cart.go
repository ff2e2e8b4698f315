// Package state holds the in-memory caches that mirror durable storage:
// the cart (joined with product data) and the auth session. The store is
// always the source of truth; these contexts are rebuilt from it after
// every mutation and are injected explicitly rather than living as
// package globals.
package state

import (
	"errors"
	"sync"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"gorm.io/gorm"
)

// ProductSnapshot is the slice of product data a cart line needs.
type ProductSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ImageURL string `json:"imageUrl"`
	Stock    int    `json:"stock"`
}

// CartLine is a cart entry joined with its product at read time.
// Stale marks lines whose product no longer exists; they price at 0.
type CartLine struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	AddedAt   string           `json:"addedAt"`
	Product   *ProductSnapshot `json:"product,omitempty"`
	Stale     bool             `json:"stale,omitempty"`
}

// CartState is a point-in-time copy handed to callers.
type CartState struct {
	Items       []CartLine `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount int        `json:"totalAmount"`
	Loading     bool       `json:"loading"`
}

// CartContext mirrors the cart collection in memory. Totals are always
// recomputed from the line slice, never kept as independent counters.
type CartContext struct {
	mu       sync.RWMutex
	lines    []CartLine
	loading  bool
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartContext(carts *repositories.CartRepository, products *repositories.ProductRepository) *CartContext {
	return &CartContext{carts: carts, products: products}
}

// joinLine resolves a cart entry against the live product. A missing
// product is not an error: the line survives with price 0 and Stale set.
func (c *CartContext) joinLine(entry models.CartEntry) (CartLine, error) {
	line := CartLine{
		ProductID: entry.ProductID,
		Quantity:  entry.Quantity,
		AddedAt:   entry.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	product, err := c.products.FindByID(entry.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		line.Stale = true
		return line, nil
	}
	if err != nil {
		return line, err
	}

	line.Product = &ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
		Stock:    product.Stock,
	}
	return line, nil
}

// Load replaces the cache with a fresh read of the cart collection,
// joining every entry to current product data. Called on startup and
// after any mutation that is not patched optimistically.
func (c *CartContext) Load() error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	entries, err := c.carts.All()
	if err != nil {
		return err
	}

	lines := make([]CartLine, 0, len(entries))
	for _, entry := range entries {
		line, err := c.joinLine(entry)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
	return nil
}

// Add puts quantity of a product in the cart, then fully reloads the
// cache. The redundant round-trip buys correctness: merge-on-add and the
// product join both happen in exactly one place.
func (c *CartContext) Add(productID string, quantity int) error {
	if err := c.carts.Add(productID, quantity); err != nil {
		return err
	}
	return c.Load()
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line
// entirely. The cache is patched in place; totals are recomputed on read.
func (c *CartContext) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(productID)
	}

	if err := c.carts.UpdateQuantity(productID, quantity); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
		}
	}
	c.mu.Unlock()
	return nil
}

// Remove deletes a line from store and cache.
func (c *CartContext) Remove(productID string) error {
	if err := c.carts.Remove(productID); err != nil {
		return err
	}

	c.mu.Lock()
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	c.mu.Unlock()
	return nil
}

// Clear empties the cart in store and cache.
func (c *CartContext) Clear() error {
	if err := c.carts.Clear(); err != nil {
		return err
	}

	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
	return nil
}

// State returns a copy of the cache with totals computed from the lines.
func (c *CartContext) State() CartState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]CartLine, len(c.lines))
	copy(items, c.lines)

	totalItems, totalAmount := totals(items)
	return CartState{
		Items:       items,
		TotalItems:  totalItems,
		TotalAmount: totalAmount,
		Loading:     c.loading,
	}
}

// totals derives both totals as a pure function of the line slice.
func totals(lines []CartLine) (items, amount int) {
	for _, line := range lines {
		items += line.Quantity
		price := 0
		if line.Product != nil {
			price = line.Product.Price
		}
		amount += price * line.Quantity
	}
	return items, amount
}
