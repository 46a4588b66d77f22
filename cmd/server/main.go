package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/adapters/http/routes"
	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/config"
	"hmc-messhub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "hmc-messhub/docs" // Swagger docs
)

// @title HMC MessHub API
// @version 1.0
// @description Hostel mess management backend: menus, polls, rebates, extras billing and forums
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@messhub.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host mess.hmc.ac.in
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed super admin and sample hostel
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("Warning: Failed to seed data: %v", err)
	}

	// Start housekeeping jobs (token + notification purge)
	cronService := services.NewCronService(
		repositories.NewRefreshTokenRepository(db),
		services.NewNotificationService(db),
	)
	if err := cronService.Start(); err != nil {
		log.Fatalf("Failed to start cron scheduler: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HMC MessHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
