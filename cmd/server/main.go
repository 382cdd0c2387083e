package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/realtime"
	"github.com/spincrate/backend/internal/router"
	"github.com/spincrate/backend/pkg/config"
	"github.com/spincrate/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Realtime hub for per-account notification rooms
	hub := realtime.NewHub()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, cfg, hub)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
