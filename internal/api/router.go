package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/catalogo/product-catalog-api/internal/api/handler"
	"github.com/catalogo/product-catalog-api/internal/api/middleware"
	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/service"
	mongodb "github.com/catalogo/product-catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/catalogo/product-catalog-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the knobs the router needs beyond its connections.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	CacheTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	categoryRepo := mongodb.NewCategoryRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	categoryCache := redisdb.NewCategoryCache(rdb, cfg.CacheTTL)

	categoryService := service.NewCategoryService(categoryRepo, categoryCache, log)
	productService := service.NewProductService(productRepo, categoryService, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log)

	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	authHandler := handler.NewAuthHandler(authService)

	authenticated := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	// Login routes pin their role: the body never selects admin.
	e.POST("/auth/signup", authHandler.Register)
	e.POST("/auth/login", authHandler.Login, middleware.AttachRole(domain.RoleUser))
	e.POST("/auth/admin/login", authHandler.Login, middleware.AttachRole(domain.RoleAdmin))

	// --- Category routes ---
	categories := e.Group("/api/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.GetByID)
	categories.GET("/name/:name", categoryHandler.GetByName)
	categories.POST("", categoryHandler.Create, authenticated, adminOnly)
	categories.PUT("/:id", categoryHandler.Update, authenticated, adminOnly)
	categories.DELETE("/:id", categoryHandler.Delete, authenticated, adminOnly)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/filter-by/category/id/:id", productHandler.FilterByCategoryID)
	products.GET("/filter-by/category/name/:name", productHandler.FilterByCategoryName)
	products.GET("/filter-by/price", productHandler.FilterByPriceRange)
	products.GET("/search-by/name/:term", productHandler.SearchByName)
	products.GET("/:id", productHandler.GetByID)
	products.POST("", productHandler.Create, authenticated, adminOnly)
	products.PUT("/:id", productHandler.Update, authenticated, adminOnly)
	products.DELETE("/:id", productHandler.Delete, authenticated, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
