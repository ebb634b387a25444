package router

import (
	"time"

	"github.com/kim-DL/onnuri-inven/internal/config"
	"github.com/kim-DL/onnuri-inven/internal/handler"
	"github.com/kim-DL/onnuri-inven/internal/middleware"
	"github.com/kim-DL/onnuri-inven/internal/repository"
	"github.com/kim-DL/onnuri-inven/internal/service"
	"github.com/kim-DL/onnuri-inven/internal/storage"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store *storage.FSStore) *gin.Engine {
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
	zoneRepo := repository.NewZoneRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	identityRepo := repository.NewIdentityRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(identityRepo, profileRepo, cfg)
	settingsSvc := service.NewSettingsService(settingRepo, rdb)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo)
	productSvc := service.NewProductService(productRepo, inventoryRepo, zoneRepo, settingsSvc, store)
	adminSvc := service.NewAdminService(identityRepo, profileRepo)
	dashboardSvc := service.NewDashboardService(productRepo, zoneRepo, inventorySvc, settingsSvc, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	zonesH := handler.NewZonesHandler(zoneRepo)
	productsH := handler.NewProductsHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	adminH := handler.NewAdminHandler(adminSvc, productSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Stored photos are public reads, same as the upstream object host.
	r.Static("/storage/object/public/"+storage.PhotoBucket, store.BucketDir())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(authSvc, profileRepo)
	protected := api.Group("", jwtMW)
	{
		protected.GET("/auth/me", authH.Me)
		protected.GET("/zones", zonesH.List)

		protected.GET("/products", productsH.List)
		protected.GET("/products/archived", productsH.ListArchived)
		protected.GET("/products/export.csv", productsH.ExportCSV)
		protected.POST("/products", productsH.Create)
		protected.GET("/products/:id", productsH.Get)
		protected.PATCH("/products/:id", productsH.Update)
		protected.POST("/products/:id/archive", productsH.Archive)
		protected.POST("/products/:id/restore", productsH.Restore)
		protected.POST("/products/:id/photo", productsH.UploadPhoto)

		protected.GET("/products/:id/stock", inventoryH.GetStock)
		protected.POST("/products/:id/stock", inventoryH.Adjust)
		protected.GET("/products/:id/logs", inventoryH.Logs)
		protected.GET("/inventory/activity", inventoryH.RecentActivity)

		protected.GET("/dashboard/summary", dashboardH.Summary)
		protected.GET("/dashboard/expiry-alerts", dashboardH.ExpiryAlerts)

		protected.GET("/settings/expiry-warning-days", settingsH.GetExpiryWarningDays)
		protected.PUT("/settings/expiry-warning-days", middleware.RequireAdmin(), settingsH.SetExpiryWarningDays)

		admin := protected.Group("/admin", middleware.RequireAdmin())
		{
			admin.POST("/products/delete", adminH.DeleteProduct)
			admin.POST("/users", adminH.CreateUser)
			admin.GET("/users", adminH.ListUsers)
			admin.PUT("/users/:id/active", adminH.SetUserActive)
			admin.PUT("/users/:id/display-name", adminH.SetDisplayName)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
