package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
	"gorm.io/gorm"
)

// ProductController serves the public catalogue.
type ProductController struct {
	products *repositories.ProductRepository
	reviews  *services.ReviewService
}

func NewProductController(products *repositories.ProductRepository, reviews *services.ReviewService) *ProductController {
	return &ProductController{products: products, reviews: reviews}
}

// Index lists the catalogue. ?category= narrows to one category,
// ?q= filters by a case-insensitive name match.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.Product
		err      error
	)

	if raw := r.URL.Query().Get("category"); raw != "" {
		category := models.Category(raw)
		if !category.Valid() {
			response.Error(w, http.StatusBadRequest, "Unknown category")
			return
		}
		products, err = c.products.FindByCategory(category)
	} else {
		products, err = c.products.AllCached()
	}

	if err != nil {
		logger.WithCtx(r.Context()).Error("catalogue list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}

	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
		matched := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) {
				matched = append(matched, p)
			}
		}
		products = matched
	}

	response.Success(w, products)
}

// Show returns one product with its review aggregate and review list.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
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

	rating, err := c.reviews.RatingFor(id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product rating", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load reviews")
		return
	}

	response.Success(w, map[string]interface{}{
		"product": product,
		"rating":  rating,
	})
}
