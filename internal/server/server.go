// Package server boots the storefront: configuration, database,
// migrations, seed data, caches, background workers and the HTTP
// surface, in that order.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/ameya/app/controllers"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/routes"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/config"
	"github.com/shashiranjanraj/ameya/database/seeders"
	"github.com/shashiranjanraj/ameya/pkg/cache"
	"github.com/shashiranjanraj/ameya/pkg/database"
	"github.com/shashiranjanraj/ameya/pkg/event"
	grpcserver "github.com/shashiranjanraj/ameya/pkg/grpc"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/metrics"
	"github.com/shashiranjanraj/ameya/pkg/middleware"
	"github.com/shashiranjanraj/ameya/pkg/migration"
	"github.com/shashiranjanraj/ameya/pkg/notification"
	"github.com/shashiranjanraj/ameya/pkg/queue"
	"github.com/shashiranjanraj/ameya/pkg/reqid"
	"github.com/shashiranjanraj/ameya/pkg/router"
	"github.com/shashiranjanraj/ameya/pkg/schedule"
	"github.com/shashiranjanraj/ameya/pkg/session"
	"github.com/shashiranjanraj/ameya/pkg/storage"
	"github.com/shashiranjanraj/ameya/pkg/ws"
)

// app holds the fully wired object graph.
type app struct {
	session  *state.SessionContext
	cart     *state.CartContext
	orderHub *ws.Hub
	router   *router.Router
}

// build wires repositories, state contexts, services and controllers.
// It touches no external resource, so the route list can be produced
// without a database.
func build() (*app, error) {
	products := repositories.NewProductRepository()
	orders := repositories.NewOrderRepository()
	carts := repositories.NewCartRepository()
	reviews := repositories.NewReviewRepository()
	users := repositories.NewUserRepository()

	cartCtx := state.NewCartContext(carts, products)
	sessionCtx := state.NewSessionContext(users)

	checkoutSvc := services.NewCheckoutService(orders, cartCtx)
	orderSvc := services.NewOrderService(orders)
	inventorySvc := services.NewInventoryService(products)
	analyticsSvc := services.NewAnalyticsService(orders, products)
	reviewSvc := services.NewReviewService(reviews)
	authSvc := services.NewAuthService(sessionCtx)

	gql, err := controllers.NewGraphQLController(products)
	if err != nil {
		return nil, fmt.Errorf("server: build graphql schema: %w", err)
	}

	hub := ws.NewHub()

	c := routes.Controllers{
		Products: controllers.NewProductController(products, reviewSvc),
		Cart:     controllers.NewCartController(cartCtx),
		Checkout: controllers.NewCheckoutController(checkoutSvc, orders),
		Reviews:  controllers.NewReviewController(reviewSvc, reviews, products, sessionCtx),
		Auth:     controllers.NewAuthController(authSvc, sessionCtx),
		Admin: controllers.NewAdminController(
			products, orders, orderSvc, inventorySvc, analyticsSvc,
		),
		GraphQL:  gql,
		OrderHub: hub,
	}

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. Session           — load/create session cookie via Redis
	//  6. CORS              — set CORS headers
	//  7. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus /metrics endpoint — no auth, no rate limit.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, c)

	return &app{
		session:  sessionCtx,
		cart:     cartCtx,
		orderHub: hub,
		router:   r,
	}, nil
}

// RouteList returns every mounted route without booting external
// dependencies.
func RouteList() ([]router.RouteInfo, error) {
	a, err := build()
	if err != nil {
		return nil, err
	}
	return a.router.Routes(), nil
}

// Start boots the whole application and blocks serving HTTP.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			logger.Attach(mh)
		}
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: connect database: %w", err)
	}

	// Schema is applied additively on every boot; existing rows are
	// never touched.
	if err := migration.New(database.DB).Run(); err != nil {
		return fmt.Errorf("server: migrate: %w", err)
	}
	if err := seeders.RunAll(database.DB); err != nil {
		return fmt.Errorf("server: seed: %w", err)
	}
	queue.UseDB(database.DB)

	// Redis is optional: the cache and session degrade gracefully, the
	// queue falls back to its in-memory driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, using in-process fallbacks", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	storage.Connect()

	if hook := config.Get("SLACK_WEBHOOK_URL", ""); hook != "" {
		notification.SetSlackWebhook(hook)
	}

	a, err := build()
	if err != nil {
		return err
	}

	// Restore the saved session and cart before the first request.
	a.session.Init()
	if err := a.cart.Load(); err != nil {
		return fmt.Errorf("server: load cart: %w", err)
	}

	// Push order lifecycle events to every connected dashboard.
	go a.orderHub.Run()
	forwardToHub := func(payload interface{}) {
		msg, err := json.Marshal(payload)
		if err != nil {
			logger.Error("marshal order event", "error", err)
			return
		}
		a.orderHub.Broadcast <- msg
	}
	event.Listen(services.EventOrderCreated, forwardToHub)
	event.Listen(services.EventOrderStatusChanged, forwardToHub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.StartWorkers(ctx, 5)

	// Keep the catalog cache warm so the first storefront hit after a
	// quiet period never pays the cold read.
	products := repositories.NewProductRepository()
	schedule.Every(5).Minutes().Name("catalog-cache-warm").WithoutOverlapping().Run(func() {
		if _, err := products.AllCached(); err != nil {
			logger.Warn("catalog cache warm failed", "error", err)
		}
	})
	schedule.Start(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		logger.Warn("grpc health server unavailable", "error", err)
	} else {
		defer grpcserver.Stop(grpcSrv)
	}

	addr := ":" + config.AppPort()
	logger.Info("ameya storefront listening", "addr", addr)
	return http.ListenAndServe(addr, a.router.Handler())
}
