package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/pkg/bind"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
	"gorm.io/gorm"
)

// CheckoutController places orders and serves order lookups.
type CheckoutController struct {
	checkout *services.CheckoutService
	orders   *repositories.OrderRepository
}

func NewCheckoutController(checkout *services.CheckoutService, orders *repositories.OrderRepository) *CheckoutController {
	return &CheckoutController{checkout: checkout, orders: orders}
}

// Create turns the cart into an order.
func (c *CheckoutController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	// The shipping address is required field by field.
	addrErrs := map[string]string{}
	if in.Address.PostalCode == "" {
		addrErrs["address.postalCode"] = "postal code is required"
	}
	if in.Address.Prefecture == "" {
		addrErrs["address.prefecture"] = "prefecture is required"
	}
	if in.Address.City == "" {
		addrErrs["address.city"] = "city is required"
	}
	if in.Address.Street == "" {
		addrErrs["address.address"] = "street address is required"
	}
	if len(addrErrs) > 0 {
		response.ValidationError(w, addrErrs)
		return
	}

	order, err := c.checkout.PlaceOrder(in)
	if errors.Is(err, services.ErrEmptyCart) {
		response.Error(w, http.StatusConflict, "Cart is empty")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not place order")
		return
	}

	response.Created(w, order)
}

// Show returns one order by ID (the order-complete page).
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := c.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("order lookup", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}
	response.Success(w, order)
}

// History lists a customer's orders, newest first. ?email= selects the
// customer; an empty email yields an empty list rather than everything.
func (c *CheckoutController) History(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.Success(w, []struct{}{})
		return
	}

	orders, err := c.orders.FindByCustomerEmail(email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order history", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Success(w, orders)
}
