package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	cartapp "github.com/helios/backend/internal/application/cart"
	catalogapp "github.com/helios/backend/internal/application/catalog"
	checkoutapp "github.com/helios/backend/internal/application/checkout"
	financeapp "github.com/helios/backend/internal/application/finance"
	identityapp "github.com/helios/backend/internal/application/identity"
	newsletterapp "github.com/helios/backend/internal/application/newsletter"
	notifyapp "github.com/helios/backend/internal/application/notify"
	orderapp "github.com/helios/backend/internal/application/order"
	sellerapp "github.com/helios/backend/internal/application/seller"
	"github.com/helios/backend/internal/infrastructure/auth"
	"github.com/helios/backend/internal/infrastructure/config"
	"github.com/helios/backend/internal/infrastructure/logger"
	"github.com/helios/backend/internal/infrastructure/mail"
	"github.com/helios/backend/internal/infrastructure/persistence"
	"github.com/helios/backend/internal/infrastructure/session"
	"github.com/helios/backend/internal/interfaces/http/handler"
	"github.com/helios/backend/internal/interfaces/http/middleware"
	"github.com/helios/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Helios Storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection
	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis-backed session cart
	redisClient, err := session.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	cartStore := session.NewRedisCartStore(redisClient, cfg.Cart.TTL, log.Named("cart"))
	log.Info("Redis connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	impactFundRepo := persistence.NewGormImpactFundRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	subscriberRepo := persistence.NewGormSubscriberRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	mailer := mail.NewMailer(cfg.Mail, log.Named("mail"))

	// Application services
	identityService := identityapp.NewService(userRepo, jwtService, log.Named("identity"))
	catalogService := catalogapp.NewService(productRepo, categoryRepo, log.Named("catalog"))
	cartService := cartapp.NewService(cartStore, productRepo, log.Named("cart"))
	sellerService := sellerapp.NewService(sellerRepo, productRepo, log.Named("seller"))
	orderService := orderapp.NewService(orderRepo, log.Named("order"))
	financeService := financeapp.NewService(impactFundRepo, log.Named("finance"))
	newsletterService := newsletterapp.NewService(subscriberRepo, log.Named("newsletter"))
	notifyService := notifyapp.NewService(notificationRepo, sellerRepo, userRepo, mailer, cfg.Mail.AdminEmail, log.Named("notify"))
	checkoutService := checkoutapp.NewService(cartStore, productRepo, sellerRepo, txScope, notifyService, log.Named("checkout"))
	checkoutService.SetAddressSource(orderRepo)
	orderService.SetNotifier(notifyService)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(identityService, log.Named("http"))
	catalogHandler := handler.NewCatalogHandler(catalogService, log.Named("http"))
	cartHandler := handler.NewCartHandler(cartService, log.Named("http"))
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, log.Named("http"))
	orderHandler := handler.NewOrderHandler(orderService, log.Named("http"))
	sellerHandler := handler.NewSellerHandler(sellerService, orderService, log.Named("http"))
	adminHandler := handler.NewAdminHandler(orderService, sellerService, catalogService, financeService, log.Named("http"))
	notificationHandler := handler.NewNotificationHandler(notifyService, log.Named("http"))
	newsletterHandler := handler.NewNewsletterHandler(newsletterService, log.Named("http"))
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report binding errors with json field names
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Every API request gets a session ID for the cart
	r.Use(middleware.Session())

	requireAuth := middleware.RequireAuth(jwtService, log)
	optionalAuth := middleware.OptionalAuth(jwtService)
	requireSeller := middleware.RequireSeller(sellerRepo, log)
	requireAdmin := middleware.RequireAdmin()

	// Public storefront catalog
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.GET("/products", catalogHandler.ListProducts)
	catalogRoutes.GET("/products/:slug", catalogHandler.GetProduct)
	catalogRoutes.GET("/categories", catalogHandler.ListCategories)
	catalogRoutes.GET("/categories/:slug/products", catalogHandler.ListByCategory)

	// Session cart, available to guests
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.POST("/items/:id", cartHandler.Add)
	cartRoutes.PUT("/items/:id", cartHandler.Update)
	cartRoutes.DELETE("/items/:id", cartHandler.Remove)

	// Checkout, guests allowed, orders linked to the account when present
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.Use(optionalAuth)
	checkoutRoutes.POST("", checkoutHandler.PlaceOrder)
	checkoutRoutes.GET("/shipping", checkoutHandler.GetShipping)
	checkoutRoutes.POST("/shipping", checkoutHandler.SetShipping)

	// Accounts
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", requireAuth, authHandler.Me)
	authRoutes.PUT("/me", requireAuth, authHandler.UpdateProfile)
	authRoutes.PUT("/me/password", requireAuth, authHandler.ChangePassword)

	// Buyer order history
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.Use(requireAuth)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// In-app notification inbox
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.Use(requireAuth)
	notificationRoutes.GET("", notificationHandler.Inbox)
	notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.POST("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)

	// Newsletter
	newsletterRoutes := router.NewDomainGroup("newsletter", "/newsletter")
	newsletterRoutes.POST("/subscribe", newsletterHandler.Subscribe)
	newsletterRoutes.POST("/unsubscribe", newsletterHandler.Unsubscribe)

	// Seller dashboard. Signup and profile lookup need only an account;
	// everything else needs an approved seller profile.
	sellerRoutes := router.NewDomainGroup("seller", "/seller")
	sellerRoutes.Use(requireAuth)
	sellerRoutes.POST("/signup", sellerHandler.Signup)
	sellerRoutes.GET("/profile", sellerHandler.Profile)
	sellerRoutes.PUT("/profile", requireSeller, sellerHandler.UpdateProfile)
	sellerRoutes.PUT("/bank", requireSeller, sellerHandler.UpdateBankDetails)
	sellerRoutes.GET("/products", requireSeller, sellerHandler.ListProducts)
	sellerRoutes.POST("/products", requireSeller, sellerHandler.CreateProduct)
	sellerRoutes.PUT("/products/:id", requireSeller, sellerHandler.UpdateProduct)
	sellerRoutes.DELETE("/products/:id", requireSeller, sellerHandler.DeleteProduct)
	sellerRoutes.GET("/orders", requireSeller, sellerHandler.ListOrders)
	sellerRoutes.GET("/orders/unshipped", requireSeller, sellerHandler.ListUnshippedOrders)
	sellerRoutes.GET("/orders/shipped", requireSeller, sellerHandler.ListShippedOrders)
	sellerRoutes.GET("/orders/:id", requireSeller, sellerHandler.GetOrder)
	sellerRoutes.GET("/orders/:id/export", requireSeller, sellerHandler.ExportOrder)
	sellerRoutes.POST("/orders/:id/ship", requireSeller, sellerHandler.ShipOrder)

	// Marketplace back-office
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(requireAuth, requireAdmin)
	adminRoutes.GET("/orders", adminHandler.ListOrders)
	adminRoutes.GET("/orders/unshipped", adminHandler.ListUnshippedOrders)
	adminRoutes.GET("/orders/shipped", adminHandler.ListShippedOrders)
	adminRoutes.GET("/orders/export", adminHandler.ExportOrders)
	adminRoutes.GET("/orders/:id", adminHandler.GetOrder)
	adminRoutes.GET("/orders/:id/export", adminHandler.ExportOrderDetail)
	adminRoutes.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
	adminRoutes.POST("/orders/:id/cancel", adminHandler.CancelOrder)
	adminRoutes.GET("/sellers", adminHandler.ListSellers)
	adminRoutes.POST("/sellers/:id/activate", adminHandler.ActivateSeller)
	adminRoutes.POST("/sellers/:id/deactivate", adminHandler.DeactivateSeller)
	adminRoutes.POST("/categories", adminHandler.CreateCategory)
	adminRoutes.DELETE("/categories/:id", adminHandler.DeleteCategory)
	adminRoutes.GET("/impact-fund", adminHandler.ImpactFund)
	adminRoutes.POST("/impact-fund/donations", adminHandler.RecordDonation)
	adminRoutes.POST("/impact-fund/expenses", adminHandler.RecordExpense)
	adminRoutes.DELETE("/impact-fund/entries/:id", adminHandler.VoidImpactEntry)

	// System
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(authRoutes).
		Register(orderRoutes).
		Register(notificationRoutes).
		Register(newsletterRoutes).
		Register(sellerRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
