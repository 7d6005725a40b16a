package main

import (
	"log"
	"os"
	"strings"

	"realty-api/config"
	"realty-api/handlers"
	"realty-api/initializers"
	"realty-api/middleware"
	"realty-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.Load("configs/app.yaml")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	listings, err := initializers.LoadMockListings()
	if err != nil {
		log.Fatalf("mock dataset error: %v", err)
	}
	mockRepo := repository.NewMemoryListingsRepository(listings)

	// The database is optional: a missing DATABASE_URL or a failed ping
	// means every request is served from the mock collection.
	var dbRepo repository.ListingsStore
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Printf("database unavailable, running in mock-only mode: %v", err)
		} else {
			defer db.Close()
			dbRepo = repository.NewListingsRepository(db)
		}
	} else {
		log.Println("DATABASE_URL not set, running in mock-only mode")
	}

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		parts := strings.Split(proxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	r.GET("/health", handlers.HealthCheck)

	listingsHandler := handlers.NewListingsHandler(dbRepo, mockRepo)
	api := r.Group("/api")
	{
		api.GET("/listings", listingsHandler.GetListings)
		api.GET("/listings/:id", listingsHandler.GetListingByID)
		api.GET("/listings/:id/related", listingsHandler.GetRelatedListings)
	}

	log.Printf("%s listening on %s", cfg.App.Name, cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
