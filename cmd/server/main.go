package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/EricStrohmaier/motivations-bot/internal/alerts"
	"github.com/EricStrohmaier/motivations-bot/internal/config"
	"github.com/EricStrohmaier/motivations-bot/internal/database"
	"github.com/EricStrohmaier/motivations-bot/internal/routes"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	notifier := alerts.NewSlackNotifier(cfg.SlackWebhookURL)

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	startedAt := time.Now()
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.DB.Ping(c.Context()); err != nil {
			notifier.Alert(c.Context(), err, map[string]string{
				"databaseStatus": "disconnected",
				"uptime":         time.Since(startedAt).String(),
			})
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  "connected",
			"bot":       "running",
		})
	})

	botApp, err := routes.RegisterRoutes(app, cfg, database.DB)
	if err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// 4. Start the notification scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := botApp.Poller.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// 5. Graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Received shutdown signal")
		botApp.Poller.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}
