package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kananfatullayev/ms-loan/internal/adapters/http/middleware"
	"github.com/kananfatullayev/ms-loan/internal/adapters/http/routes"
	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/models"
	"github.com/kananfatullayev/ms-loan/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "github.com/kananfatullayev/ms-loan/docs" // Swagger docs
)

// @title ms-loan API
// @version 1.0
// @description Loan management microservice: CRUD over loan records with amortized monthly payment calculation.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("failed to auto migrate: %v", err)
	}
	log.Println("database migration completed")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ms-loan API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	log.Println("server stopped gracefully")
}
