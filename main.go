package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/api"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/auth"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/cache"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/config"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/pretranslate"
)

func main() {
	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Optional redis cache in front of the translation memory service
	var tmCache pretranslate.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, 24*time.Hour)
		if err != nil {
			log.Printf("WARNING: redis unavailable, translation memory cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			tmCache = redisCache
			log.Printf("Translation memory cache enabled")
		}
	}

	// Pretranslation engine
	service := pretranslate.NewService(database, database, database, pretranslate.Config{
		TMEndpoint:    cfg.TMServiceURL,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		TMCache:       tmCache,
	})

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, service)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Translation memory service: %s", cfg.TMServiceURL)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
