package services

import (
	"fmt"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/pkg/collection"
)

// CategorySlice is one category's share of revenue.
type CategorySlice struct {
	Category   models.Category `json:"category"`
	Products   int             `json:"products"`
	Revenue    int             `json:"revenue"`
	Percentage float64         `json:"percentage"`
}

// StatusSlice is one lifecycle state's share of orders.
type StatusSlice struct {
	Status     models.OrderStatus `json:"status"`
	Count      int                `json:"count"`
	Percentage float64            `json:"percentage"`
}

// ProductSales is a top-seller row, ranked by units sold.
type ProductSales struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
	Revenue   int    `json:"revenue"`
}

// Report is the admin analytics dashboard payload. Everything here is
// derived from the stored orders and products — nothing is estimated.
type Report struct {
	TotalRevenue      int             `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue float64         `json:"averageOrderValue"`
	ByCategory        []CategorySlice `json:"byCategory"`
	ByStatus          []StatusSlice   `json:"byStatus"`
	TopProducts       []ProductSales  `json:"topProducts"`
}

// AnalyticsService computes the back-office sales report.
type AnalyticsService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewAnalyticsService(orders *repositories.OrderRepository, products *repositories.ProductRepository) *AnalyticsService {
	return &AnalyticsService{orders: orders, products: products}
}

// Build computes the report over all stored orders. Cancelled orders
// count toward the status breakdown but not toward revenue.
func (s *AnalyticsService) Build() (Report, error) {
	orders, err := s.orders.All()
	if err != nil {
		return Report{}, fmt.Errorf("analytics: load orders: %w", err)
	}
	products, err := s.products.All()
	if err != nil {
		return Report{}, fmt.Errorf("analytics: load products: %w", err)
	}

	productByID := collection.KeyBy(products, func(p models.Product) string { return p.ID })
	byCategory := collection.GroupBy(products, func(p models.Product) string {
		return string(p.Category)
	})

	report := Report{TotalOrders: len(orders)}
	statusCount := map[models.OrderStatus]int{}
	categoryRevenue := map[models.Category]int{}
	unitsSold := map[string]int{}
	revenueBy := map[string]int{}
	nameOf := map[string]string{}

	for _, o := range orders {
		statusCount[o.Status]++
	}

	// Cancelled orders count toward the status split only.
	billed := collection.Reject(orders, func(o models.Order) bool {
		return o.Status == models.OrderCancelled
	})
	for _, o := range billed {
		report.TotalRevenue += o.TotalAmount

		for _, item := range o.Items {
			unitsSold[item.ProductID] += item.Quantity
			revenueBy[item.ProductID] += item.Subtotal()
			if item.ProductName != "" {
				nameOf[item.ProductID] = item.ProductName
			}
			// Items whose product was deleted fall out of the category
			// split; their revenue still counts in the total.
			if p, ok := productByID[item.ProductID]; ok {
				categoryRevenue[p.Category] += item.Subtotal()
			}
		}
	}

	if report.TotalOrders > 0 {
		report.AverageOrderValue = float64(report.TotalRevenue) / float64(report.TotalOrders)
	}

	for _, c := range []models.Category{models.CategoryGummy, models.CategoryCandy} {
		slice := CategorySlice{Category: c, Products: len(byCategory[string(c)]), Revenue: categoryRevenue[c]}
		if report.TotalRevenue > 0 {
			slice.Percentage = float64(slice.Revenue) / float64(report.TotalRevenue) * 100
		}
		report.ByCategory = append(report.ByCategory, slice)
	}

	for _, st := range []models.OrderStatus{
		models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled,
	} {
		slice := StatusSlice{Status: st, Count: statusCount[st]}
		if report.TotalOrders > 0 {
			slice.Percentage = float64(slice.Count) / float64(report.TotalOrders) * 100
		}
		report.ByStatus = append(report.ByStatus, slice)
	}

	for id, units := range unitsSold {
		report.TopProducts = append(report.TopProducts, ProductSales{
			ProductID: id,
			Name:      nameOf[id],
			Units:     units,
			Revenue:   revenueBy[id],
		})
	}
	collection.SortBy(report.TopProducts, func(a, b ProductSales) bool {
		if a.Units != b.Units {
			return a.Units > b.Units
		}
		return a.ProductID < b.ProductID
	})
	report.TopProducts = collection.Take(report.TopProducts, 5)

	return report, nil
}
