package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/pkg/bind"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
	"github.com/shashiranjanraj/ameya/pkg/storage"
	"gorm.io/gorm"
)

// AdminController is the back office: product CRUD, order management,
// inventory and the sales report.
type AdminController struct {
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	orderSvc  *services.OrderService
	inventory *services.InventoryService
	analytics *services.AnalyticsService
}

func NewAdminController(
	products *repositories.ProductRepository,
	orders *repositories.OrderRepository,
	orderSvc *services.OrderService,
	inventory *services.InventoryService,
	analytics *services.AnalyticsService,
) *AdminController {
	return &AdminController{
		products:  products,
		orders:    orders,
		orderSvc:  orderSvc,
		inventory: inventory,
		analytics: analytics,
	}
}

// ─── Products ─────────────────────────────────────────────────────────────────

type productInput struct {
	ID          string `json:"id" validate:"required,alpha_dash,max=64"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,in=gummy,candy"`
	ImageURL    string `json:"imageUrl" validate:"nullable,max=255"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// CreateProduct adds a catalogue entry. The key is caller-chosen and
// collisions are a conflict, not an overwrite.
func (c *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	product := models.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    models.Category(in.Category),
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.products.Add(&product); err != nil {
		if isDuplicateKey(err) {
			response.Error(w, http.StatusConflict, "Product ID already exists")
			return
		}
		logger.WithCtx(r.Context()).Error("product create", "id", in.ID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return
	}
	response.Created(w, product)
}

// UpdateProduct replaces an existing product's editable fields.
func (c *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := c.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product lookup", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	var in productInput
	in.ID = id // path wins over body
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Category = models.Category(in.Category)
	product.ImageURL = in.ImageURL
	product.Stock = in.Stock
	product.UpdatedAt = time.Now()

	if err := c.products.Update(&product); err != nil {
		logger.WithCtx(r.Context()).Error("product update", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	response.Success(w, product)
}

// DeleteProduct removes a product from the catalogue, along with any
// image it stored.
func (c *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if product, err := c.products.FindByID(id); err == nil {
		if idx := strings.Index(product.ImageURL, "/images/"); idx >= 0 {
			path := product.ImageURL[idx+1:]
			if storage.Exists(path) {
				if err := storage.Delete(path); err != nil {
					logger.WithCtx(r.Context()).Warn("image delete", "id", id, "error", err)
				}
			}
		}
	}

	if err := c.products.Delete(id); err != nil {
		logger.WithCtx(r.Context()).Error("product delete", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}

// UploadImage stores a product image on the configured disk and points
// the product at its public URL.
func (c *AdminController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := c.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(w, http.StatusUnprocessableEntity, "Unsupported image type")
		return
	}

	path := fmt.Sprintf("images/%s%s", product.ID, ext)
	if err := storage.Put(path, file); err != nil {
		logger.WithCtx(r.Context()).Error("image store", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not store image")
		return
	}

	product.ImageURL = storage.URL(path)
	product.UpdatedAt = time.Now()
	if err := c.products.Update(&product); err != nil {
		logger.WithCtx(r.Context()).Error("image link", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	response.Success(w, product)
}

// ─── Orders ───────────────────────────────────────────────────────────────────

// Orders lists all orders, optionally filtered with ?status=.
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []models.Order
		err    error
	)

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			response.Error(w, http.StatusBadRequest, "Unknown status")
			return
		}
		orders, err = c.orders.FindByStatus(status)
	} else {
		orders, err = c.orders.All()
	}

	if err != nil {
		logger.WithCtx(r.Context()).Error("order list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Success(w, orders)
}

type statusInput struct {
	Status string `json:"status" validate:"required,in=pending,processing,shipped,delivered,cancelled"`
}

// UpdateOrderStatus moves an order along its lifecycle.
func (c *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in statusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orderSvc.UpdateStatus(id, models.OrderStatus(in.Status))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		// Transition violations are client errors, everything else is ours.
		if strings.Contains(err.Error(), "cannot move") {
			response.Error(w, http.StatusConflict, "Invalid status transition")
			return
		}
		logger.WithCtx(r.Context()).Error("order status", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update order")
		return
	}
	response.Success(w, order)
}

// ─── Inventory ────────────────────────────────────────────────────────────────

// Inventory lists the catalogue with stock status per product.
func (c *AdminController) Inventory(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("inventory list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load inventory")
		return
	}

	summary, err := c.inventory.Summary()
	if err != nil {
		logger.WithCtx(r.Context()).Error("inventory summary", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load inventory")
		return
	}

	type row struct {
		models.Product
		StockStatus services.StockStatus `json:"stockStatus"`
	}
	rows := make([]row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row{Product: p, StockStatus: services.StatusFor(p.Stock)})
	}

	response.Success(w, map[string]interface{}{"items": rows, "summary": summary})
}

type stockInput struct {
	Stock int `json:"stock"`
}

// SetStock replaces one product's stock level.
func (c *AdminController) SetStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in stockInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := c.inventory.SetStock(id, in.Stock)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("stock set", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update stock")
		return
	}
	response.Success(w, product)
}

type adjustInput struct {
	Delta int `json:"delta" validate:"required"`
}

// BulkAdjust shifts every product's stock by a signed delta.
func (c *AdminController) BulkAdjust(w http.ResponseWriter, r *http.Request) {
	var in adjustInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	products, err := c.inventory.BulkAdjust(in.Delta)
	if err != nil {
		logger.WithCtx(r.Context()).Error("stock adjust", "delta", in.Delta, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not adjust stock")
		return
	}
	response.Success(w, products)
}

// ─── Analytics ────────────────────────────────────────────────────────────────

// Analytics returns the sales report.
func (c *AdminController) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := c.analytics.Build()
	if err != nil {
		logger.WithCtx(r.Context()).Error("analytics", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not build report")
		return
	}
	response.Success(w, report)
}

// isDuplicateKey matches the portable subset of unique-violation errors
// the supported drivers return.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
