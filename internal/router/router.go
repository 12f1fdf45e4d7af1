package router

import (
	"time"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/config"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/handler"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/middleware"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/service"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, stockRepo)
	promoSvc := service.NewPromotionService(promoRepo, productRepo)
	inventorySvc := service.NewInventoryService(stockRepo, dispatcher)
	orderSvc := service.NewOrderService(orderRepo, promoRepo, productRepo, inventorySvc, cfg.Store, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	promotionsH := handler.NewPromotionsHandler(promoSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	posH := handler.NewPOSHandler(orderSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	priceH := handler.NewPriceCheckHandler(productSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Checkout and order tracking — no auth required (web storefront)
	r.POST("/v1/orders", ordersH.Create)
	r.GET("/v1/orders/:number", ordersH.Track)
	r.POST("/v1/promotions/validate", promotionsH.Validate)

	// Price check — no auth required (in-store scanner kiosks)
	r.GET("/v1/pos/price/:barcode", priceH.GetByBarcode)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: staff, admin — declared per-endpoint
		v1.POST("/pos/orders", middleware.RequireRole(model.RoleStaff, model.RoleAdmin), posH.CreateOrder)

		v1.GET("/orders", middleware.RequireRole(model.RoleStaff, model.RoleAdmin), ordersH.List)
		v1.GET("/orders/stats", middleware.RequireRole(model.RoleStaff, model.RoleAdmin), ordersH.Stats)
		v1.PATCH("/orders/:id/status", middleware.RequireRole(model.RoleStaff, model.RoleAdmin), ordersH.UpdateStatus)

		// GET /v1/products — staff can read (catalog sync), admin writes
		v1.GET("/products", middleware.RequireRole(model.RoleStaff, model.RoleAdmin), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole(model.RoleStaff, model.RoleAdmin), productsH.Get)
		prods := v1.Group("/products", middleware.RequireRole(model.RoleAdmin))
		{
			prods.POST("", productsH.Create)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		inv := v1.Group("/inventory", middleware.RequireRole(model.RoleStaff, model.RoleAdmin))
		{
			inv.GET("/stock", inventoryH.ListStock)
			inv.GET("/movements", inventoryH.ListMovements)
			inv.POST("/receive", inventoryH.Receive)
			inv.POST("/return", inventoryH.Return)
			inv.POST("/adjust", inventoryH.Adjust)
			inv.POST("/damage", inventoryH.Damage)
			inv.GET("/alerts", inventoryH.ListAlerts)
			inv.PATCH("/alerts/:id", inventoryH.UpdateAlert)
		}

		// Promotion management — admin only
		promos := v1.Group("/promotions", middleware.RequireRole(model.RoleAdmin))
		{
			promos.POST("", promotionsH.Create)
			promos.GET("", promotionsH.List)
			promos.GET("/:id", promotionsH.Get)
			promos.DELETE("/:id", promotionsH.Deactivate)
			promos.PATCH("/:id/reactivate", promotionsH.Reactivate)
		}

		users := v1.Group("/users", middleware.RequireRole(model.RoleAdmin))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
