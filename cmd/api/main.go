package main

import (
	"context"
	"log"

	"github.com/emuats/recipely/backend/config"
	"github.com/emuats/recipely/backend/internal/api"
	"github.com/emuats/recipely/backend/internal/database"
	"github.com/emuats/recipely/backend/internal/server"
	"github.com/emuats/recipely/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	opts := api.Options{
		DB:        db,
		JWTSecret: cfg.JWTSecret,
		Email:     service.NewEmailService(),
	}

	healthDB, err := database.New(cfg)
	if err != nil {
		log.Printf("Raw database connection unavailable, health checks degraded: %v", err)
	} else {
		opts.HealthDB = healthDB
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	} else {
		opts.Redis = redisClient
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
	} else {
		opts.S3 = s3Config
	}

	srv := server.New(api.NewRouter(opts))
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
