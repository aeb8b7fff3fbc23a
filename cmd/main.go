package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"subleasend/backend/internal/api/handler"
	"subleasend/backend/internal/api/middleware"
	"subleasend/backend/internal/auth"
	"subleasend/backend/internal/config"
	"subleasend/backend/internal/realtime"
	"subleasend/backend/internal/storage"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	return db, rdb
}

func registerRoutes(r *gin.Engine, h *handler.Handler, tokens *auth.TokenManager) {
	authRequired := middleware.RequireAuth(tokens)

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/signin", h.SignIn)

		api.GET("/listings", h.ListListings)
		api.GET("/listings/mine", authRequired, h.MyListings)
		api.GET("/listings/:id", h.GetListing)
		api.POST("/listings", authRequired, h.CreateListing)
		api.PUT("/listings/:id", authRequired, h.UpdateListing)
		api.DELETE("/listings/:id", authRequired, h.DeleteListing)
		api.PATCH("/listings/:id/availability", authRequired, h.SetListingAvailability)

		api.POST("/favorites", authRequired, h.AddFavorite)
		api.DELETE("/favorites/:listingId", authRequired, h.RemoveFavorite)
		api.GET("/favorites", authRequired, h.ListFavorites)
		api.GET("/favorites/:listingId/check", authRequired, h.CheckFavorite)

		api.GET("/conversations", authRequired, h.ListConversations)
		api.POST("/conversations", authRequired, h.CreateConversation)
		api.GET("/conversations/:id/messages", authRequired, h.ListMessages)
		api.POST("/conversations/:id/messages", authRequired, h.PostMessage)

		api.PATCH("/messages/:id/read", authRequired, h.MarkMessageRead)
	}

	r.GET("/ws", h.ServeWebSocket)
}

func main() {
	log.Println("Starting SubleaseND Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	if err := s.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database and Redis connections established, migrations complete.")

	hub := realtime.NewHub(s)
	go hub.Run()

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	r := gin.Default()
	h := handler.NewHandler(s, tokens, hub)
	registerRoutes(r, h, tokens)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
