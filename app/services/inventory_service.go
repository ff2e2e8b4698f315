package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/pkg/logger"
)

// StockStatus classifies a stock level for the back-office list.
type StockStatus string

const (
	StockOut  StockStatus = "out"  // 0
	StockLow  StockStatus = "low"  // 1..9
	StockWarn StockStatus = "warn" // 10..19
	StockOK   StockStatus = "ok"   // 20+
)

// StatusFor buckets a stock level, same thresholds as the admin screen.
func StatusFor(stock int) StockStatus {
	switch {
	case stock == 0:
		return StockOut
	case stock < 10:
		return StockLow
	case stock < 20:
		return StockWarn
	default:
		return StockOK
	}
}

// InventorySummary is the header block of the inventory page.
type InventorySummary struct {
	Products   int `json:"products"`
	LowStock   int `json:"lowStock"`   // below 10, excluding out
	OutOfStock int `json:"outOfStock"` // exactly 0
	Healthy    int `json:"healthy"`    // 20 and above
}

// InventoryService covers the admin stock operations.
type InventoryService struct {
	products *repositories.ProductRepository
}

func NewInventoryService(products *repositories.ProductRepository) *InventoryService {
	return &InventoryService{products: products}
}

// SetStock replaces a product's stock level. Negative input clamps to 0.
func (s *InventoryService) SetStock(productID string, stock int) (models.Product, error) {
	product, err := s.products.FindByID(productID)
	if err != nil {
		return models.Product{}, fmt.Errorf("inventory: set stock: %w", err)
	}

	if stock < 0 {
		stock = 0
	}
	product.Stock = stock
	product.UpdatedAt = time.Now()

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, fmt.Errorf("inventory: set stock: %w", err)
	}
	return product, nil
}

// BulkAdjust shifts every product's stock by delta, clamping each at 0
// so a large negative adjustment can never drive stock negative.
func (s *InventoryService) BulkAdjust(delta int) ([]models.Product, error) {
	products, err := s.products.All()
	if err != nil {
		return nil, fmt.Errorf("inventory: bulk adjust: %w", err)
	}

	for i := range products {
		stock := products[i].Stock + delta
		if stock < 0 {
			stock = 0
		}
		products[i].Stock = stock
		products[i].UpdatedAt = time.Now()

		if err := s.products.Update(&products[i]); err != nil {
			return nil, fmt.Errorf("inventory: bulk adjust %s: %w", products[i].ID, err)
		}
	}

	logger.Info("inventory adjusted", "delta", delta, "products", len(products))
	return products, nil
}

// Summary counts the stock buckets across the catalogue.
func (s *InventoryService) Summary() (InventorySummary, error) {
	products, err := s.products.All()
	if err != nil {
		return InventorySummary{}, fmt.Errorf("inventory: summary: %w", err)
	}

	sum := InventorySummary{Products: len(products)}
	for _, p := range products {
		switch {
		case p.Stock == 0:
			sum.OutOfStock++
		case p.Stock < 10:
			sum.LowStock++
		case p.Stock >= 20:
			sum.Healthy++
		}
	}
	return sum, nil
}
