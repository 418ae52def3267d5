package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopstack/backend/internal/client"
	"github.com/shopstack/backend/internal/config"
	"github.com/shopstack/backend/internal/db"
	"github.com/shopstack/backend/internal/handler"
	"github.com/shopstack/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repo := &db.Postgres{Pool: pool}

	if err := repo.EnsureUserSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure user schema: %v", err)
	}
	if err := repo.EnsureProductSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure product schema: %v", err)
	}
	if err := repo.EnsureOrderSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure order schema: %v", err)
	}

	sessions, err := client.NewRedisSessionStore(ctx, cfg.Redis, service.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer sessions.Close()

	tokens, err := service.NewTokenIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret)
	if err != nil {
		log.Fatalf("Failed to init token issuer: %v", err)
	}

	authService := service.NewAuthService(repo, sessions, tokens)
	productService := service.NewProductService(repo)
	orderService := service.NewOrderService(repo)

	authHandler := handler.NewAuthHandler(authService, cfg.Auth.IsProduction())
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)

	router := gin.Default()

	if cfg.HTTP.AllowedOrigins != "" {
		origins := strings.Split(cfg.HTTP.AllowedOrigins, ",")
		router.Use(handler.CORSMiddleware(origins))
	}

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/profile", handler.AuthMiddleware(authService), authHandler.Profile)
	}

	products := router.Group("/api/products")
	{
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/category/:category", productHandler.GetProductsByCategory)

		admin := products.Group("", handler.AuthMiddleware(authService), handler.AdminMiddleware())
		{
			admin.GET("", productHandler.GetProducts)
			admin.POST("", productHandler.CreateProduct)
			admin.PATCH("/:id", productHandler.ToggleFeaturedProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	orders := router.Group("/api/orders", handler.AuthMiddleware(authService))
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetOrders)
	}

	log.Printf("Server is running on http://localhost:%s", cfg.HTTP.Port)
	if err := router.Run(":" + cfg.HTTP.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
