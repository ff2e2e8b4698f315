package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/pkg/bind"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
)

// CartController exposes the cart state cache. Every handler answers
// with the full cart state so the client never patches totals itself.
type CartController struct {
	cart *state.CartContext
}

func NewCartController(cart *state.CartContext) *CartController {
	return &CartController{cart: cart}
}

// Show returns the current cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.cart.State())
}

type addToCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// Add puts a product in the cart (merging with an existing line).
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in addToCartInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.cart.Add(in.ProductID, in.Quantity); err != nil {
		logger.WithCtx(r.Context()).Error("cart add", "product_id", in.ProductID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	response.Success(w, c.cart.State())
}

type updateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var in updateQuantityInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.cart.UpdateQuantity(productID, in.Quantity); err != nil {
		logger.WithCtx(r.Context()).Error("cart update", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	response.Success(w, c.cart.State())
}

// Remove deletes a line.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := c.cart.Remove(productID); err != nil {
		logger.WithCtx(r.Context()).Error("cart remove", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	response.Success(w, c.cart.State())
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.cart.Clear(); err != nil {
		logger.WithCtx(r.Context()).Error("cart clear", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	response.Success(w, c.cart.State())
}
