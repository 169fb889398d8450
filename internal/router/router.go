package router

import (
	"time"

	"github.com/Kitchen-Control/CentralKitchen/internal/config"
	"github.com/Kitchen-Control/CentralKitchen/internal/handler"
	"github.com/Kitchen-Control/CentralKitchen/internal/middleware"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
	"github.com/Kitchen-Control/CentralKitchen/internal/rules"
	"github.com/Kitchen-Control/CentralKitchen/internal/service"
	"github.com/Kitchen-Control/CentralKitchen/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cache := service.NewStockCache(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	storeSvc := service.NewStoreService(storeRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, productionRepo, productRepo, orderRepo, cache)
	productionSvc := service.NewProductionService(productionRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, inventoryRepo, deliveryRepo, storeRepo, dispatcher, cache)
	deliverySvc := service.NewDeliveryService(deliveryRepo, orderRepo, userRepo, dispatcher, cache)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, orderRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	storesH := handler.NewStoresHandler(storeSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	productionH := handler.NewProductionHandler(productionSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	deliveriesH := handler.NewDeliveriesHandler(deliverySvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	stockH := handler.NewStockHandler(productSvc, inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Availability check — no auth required
	r.GET("/v1/public/stock/:product_id", stockH.Availability)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		users := v1.Group("/users", middleware.RequireCapability(rules.CapManageUsers))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}

		stores := v1.Group("/stores", middleware.RequireCapability(rules.CapManageStores))
		{
			stores.POST("", storesH.Create)
			stores.GET("", storesH.List)
			stores.GET("/:id", storesH.Get)
			stores.PUT("/:id", storesH.Update)
			stores.DELETE("/:id", storesH.Deactivate)
		}

		// Catalog reads are open to every authenticated role; writes need
		// the manage capability.
		v1.GET("/products", productsH.List)
		v1.GET("/products/:id", productsH.Get)
		prods := v1.Group("/products", middleware.RequireCapability(rules.CapManageProducts))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		inv := v1.Group("/inventory")
		{
			inv.GET("/lots", middleware.RequireCapability(rules.CapViewInventory), inventoryH.ListLots)
			inv.GET("/imports/pending", middleware.RequireCapability(rules.CapApproveImport), inventoryH.PendingImports)
			inv.POST("/imports", middleware.RequireCapability(rules.CapApproveImport), inventoryH.ApproveImport)
			inv.DELETE("/lots/:id", middleware.RequireCapability(rules.CapDisposeStock), inventoryH.Dispose)
			inv.POST("/procurements", middleware.RequireCapability(rules.CapProcureStock), inventoryH.Procure)
			inv.GET("/transactions", middleware.RequireCapability(rules.CapViewInventory), inventoryH.ListTransactions)
		}

		// Marketplace — store users composing orders
		v1.GET("/marketplace", middleware.RequireRole(model.RoleStore, model.RoleAdmin, model.RoleCoordinator), inventoryH.Marketplace)

		production := v1.Group("/production")
		{
			production.POST("/plans", middleware.RequireCapability(rules.CapManagePlans), productionH.CreatePlan)
			production.GET("/plans", middleware.RequireCapability(rules.CapViewInventory), productionH.ListPlans)
			production.GET("/plans/:id", middleware.RequireCapability(rules.CapViewInventory), productionH.GetPlan)
			production.PATCH("/plans/:id/complete", middleware.RequireCapability(rules.CapManagePlans), productionH.CompletePlan)
			production.POST("/plans/:id/batches", middleware.RequireCapability(rules.CapRunBatches), productionH.CreateBatch)
			production.PATCH("/batches/:batch_id/complete", middleware.RequireCapability(rules.CapRunBatches), productionH.CompleteBatch)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.RequireCapability(rules.CapPlaceOrder), ordersH.Create)
			orders.GET("", ordersH.List) // store users see only their own
			orders.GET("/:id", ordersH.Get)
			orders.PATCH("/:id/accept", middleware.RequireCapability(rules.CapViewAllOrders), ordersH.Accept)
			orders.DELETE("/:id", middleware.RequireCapability(rules.CapCancelOrder), ordersH.Cancel)
			orders.PATCH("/:id/resolve", middleware.RequireCapability(rules.CapResolveOrder), ordersH.Resolve)
		}

		deliveries := v1.Group("/deliveries")
		{
			deliveries.POST("", middleware.RequireCapability(rules.CapCreateDelivery), deliveriesH.Create)
			deliveries.GET("", middleware.RequireCapability(rules.CapViewDeliveries), deliveriesH.List)
			deliveries.GET("/mine", middleware.RequireRole(model.RoleShipper), deliveriesH.Mine)
			deliveries.GET("/:id", middleware.RequireCapability(rules.CapViewDeliveries), deliveriesH.Get)
			deliveries.PATCH("/:id/start", middleware.RequireCapability(rules.CapStartDelivery), deliveriesH.Start)
		}

		feedback := v1.Group("/feedback")
		{
			feedback.GET("/eligible-orders", middleware.RequireCapability(rules.CapSubmitFeedback), feedbackH.EligibleOrders)
			feedback.POST("", middleware.RequireCapability(rules.CapSubmitFeedback), feedbackH.Submit)
			feedback.GET("", middleware.RequireCapability(rules.CapViewFeedback), feedbackH.List)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
