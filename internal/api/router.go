package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/burgerqueen/pos-api/docs"
	"github.com/burgerqueen/pos-api/internal/api/handler"
	"github.com/burgerqueen/pos-api/internal/api/middleware"
	"github.com/burgerqueen/pos-api/internal/core/policy"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

// Services are the use cases the router exposes.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService
	Tokens   ports.TokenService
}

// Options tune the router's ambient concerns.
type Options struct {
	Log zerolog.Logger
	// Checks are the readiness probes served on /health/ready.
	Checks map[string]handler.DependencyCheck
	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil uses
	// the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pos",
		Registerer: opts.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	productHandler := handler.NewProductHandler(svc.Products)
	orderHandler := handler.NewOrderHandler(svc.Orders)
	authMiddleware := middleware.Auth(svc.Tokens)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)

	// --- User routes ---
	// Ownership rules need the path and payload, so the user service
	// enforces them.
	users := e.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:uid", userHandler.Get)
	users.PATCH("/:uid", userHandler.Update)
	users.DELETE("/:uid", userHandler.Delete)

	// --- Product routes ---
	adminOnlyProducts := middleware.Authorize(policy.WriteProduct)
	products := e.Group("/products", authMiddleware)
	products.GET("", productHandler.List)
	products.GET("/:productId", productHandler.Get)
	products.POST("", productHandler.Create, adminOnlyProducts)
	products.PATCH("/:productId", productHandler.Update, adminOnlyProducts)
	products.DELETE("/:productId", productHandler.Delete, adminOnlyProducts)

	// --- Order routes ---
	orders := e.Group("/orders", authMiddleware)
	orders.GET("", orderHandler.List, middleware.Authorize(policy.ReadOrder))
	orders.GET("/:orderId", orderHandler.Get, middleware.Authorize(policy.ReadOrder))
	orders.POST("", orderHandler.Create, middleware.Authorize(policy.CreateOrder))
	orders.PATCH("/:orderId", orderHandler.Update, middleware.Authorize(policy.UpdateOrder))
	orders.DELETE("/:orderId", orderHandler.Delete, middleware.Authorize(policy.DeleteOrder))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: opts.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
