// Package routes wires the HTTP surface: the public storefront, the
// authenticated customer routes and the admin back office.
package routes

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/ameya/app/controllers"
	"github.com/shashiranjanraj/ameya/pkg/middleware"
	"github.com/shashiranjanraj/ameya/pkg/rbac"
	"github.com/shashiranjanraj/ameya/pkg/response"
	"github.com/shashiranjanraj/ameya/pkg/router"
	"github.com/shashiranjanraj/ameya/pkg/storage"
	"github.com/shashiranjanraj/ameya/pkg/ws"
)

// Controllers carries the constructed controllers into route
// registration; routes never build their own dependencies.
type Controllers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Reviews  *controllers.ReviewController
	Auth     *controllers.AuthController
	Admin    *controllers.AdminController
	GraphQL  *controllers.GraphQLController
	OrderHub *ws.Hub
}

// RegisterAPI mounts every route.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	// Public storefront.
	api.Get("/products", "products.index", c.Products.Index)
	api.Get("/products/{id}", "products.show", c.Products.Show)
	api.Get("/products/{id}/reviews", "reviews.index", c.Reviews.Index)
	api.Post("/graphql", "graphql", c.GraphQL.Query)
	api.Get("/graphql", "graphql.get", c.GraphQL.Query)

	// Cart and checkout. The cart is a single local store, so these
	// routes carry no authentication — exactly like the original shop.
	api.Get("/cart", "cart.show", c.Cart.Show)
	api.Post("/cart", "cart.add", c.Cart.Add)
	api.Patch("/cart/{productId}", "cart.update", c.Cart.UpdateQuantity)
	api.Delete("/cart/{productId}", "cart.remove", c.Cart.Remove)
	api.Delete("/cart", "cart.clear", c.Cart.Clear)
	api.Post("/checkout", "checkout", c.Checkout.Create)
	api.Get("/orders", "orders.history", c.Checkout.History)
	api.Get("/orders/{id}", "orders.show", c.Checkout.Show)

	// Auth. Rate-limited: these are the only brute-forceable routes.
	api.Post("/auth/login", "auth.login", c.Auth.Login, middleware.RateLimit(10, time.Minute))
	api.Post("/auth/register", "auth.register", c.Auth.Register, middleware.RateLimit(10, time.Minute))
	api.Get("/auth/me", "auth.me", c.Auth.Me)
	api.Patch("/auth/me", "auth.update", c.Auth.UpdateProfile)
	api.Post("/auth/logout", "auth.logout", c.Auth.Logout)

	// Reviews (login checked against the session context inside).
	api.Post("/products/{id}/reviews", "reviews.submit", c.Reviews.Submit)
	api.Delete("/reviews/{reviewId}", "reviews.delete", c.Reviews.Delete)

	// Back office: bearer token plus the admin role.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	admin.Post("/products", "admin.products.create", c.Admin.CreateProduct)
	admin.Put("/products/{id}", "admin.products.update", c.Admin.UpdateProduct)
	admin.Delete("/products/{id}", "admin.products.delete", c.Admin.DeleteProduct)
	admin.Post("/products/{id}/image", "admin.products.image", c.Admin.UploadImage)
	admin.Get("/orders", "admin.orders", c.Admin.Orders)
	admin.Patch("/orders/{id}/status", "admin.orders.status", c.Admin.UpdateOrderStatus)
	admin.Get("/inventory", "admin.inventory", c.Admin.Inventory)
	admin.Patch("/inventory/{id}", "admin.inventory.stock", c.Admin.SetStock)
	admin.Post("/inventory/adjust", "admin.inventory.adjust", c.Admin.BulkAdjust)
	admin.Get("/analytics", "admin.analytics", c.Admin.Analytics)

	// Live order feed for the admin dashboard.
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, c.OrderHub)
	})

	// Uploaded files on the local disk resolve here; the s3 disk hands
	// out bucket URLs instead and never hits this route.
	r.Get("/storage/*", "storage.file", serveStoredFile)
}

func serveStoredFile(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if path == "" || strings.Contains(path, "..") {
		response.NotFound(w)
		return
	}

	f, err := storage.Open(path)
	if err != nil {
		response.NotFound(w)
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	io.Copy(w, f) //nolint:errcheck
}
