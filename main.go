package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-api/config"
	"shop-api/controllers"
	"shop-api/database"
	"shop-api/middleware"
	"shop-api/models"
	"shop-api/repository"
	"shop-api/routes"
	"shop-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	if err := models.Migrate(database.DB); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	// Redis is optional: the catalog cache degrades to a no-op when it
	// is unavailable.
	var cache *controllers.CatalogCache
	if cfg.RedisURL != "" {
		redisClient, redisErr := database.NewRedisClient(cfg.RedisURL)
		if redisErr != nil {
			logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(redisErr))
		} else {
			cache = controllers.NewCatalogCache(redisClient, cfg.CacheTTL, logger)
		}
	}

	// DI chain
	catalogRepo := repository.NewGormCatalogRepository(database.DB)
	cartRepo := repository.NewGormCartRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	catalogService := services.NewCatalogService(catalogRepo, logger)
	cartService := services.NewCartService(cartRepo, catalogRepo, logger)
	userService := services.NewUserService(userRepo, tokenService, logger)

	userController := controllers.NewUserController(userService)
	catalogController := controllers.NewCatalogController(catalogService, cache)
	cartController := controllers.NewCartController(cartService)
	adminController := controllers.NewAdminCatalogController(catalogService, cache)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "shop-api"})
	})

	authLimiter := middleware.NewRateLimiter(rate.Every(time.Minute/100), 50)
	routes.Register(r, userController, catalogController, cartController, adminController, tokenService, authLimiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("shop-api started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
