package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EricStrohmaier/motivations-bot/internal/chat"
	"github.com/EricStrohmaier/motivations-bot/internal/config"
	"github.com/EricStrohmaier/motivations-bot/internal/handlers"
	"github.com/EricStrohmaier/motivations-bot/internal/repository"
	"github.com/EricStrohmaier/motivations-bot/internal/scheduler"
	"github.com/EricStrohmaier/motivations-bot/internal/services"
	chatws "github.com/EricStrohmaier/motivations-bot/internal/websocket"
)

// App bundles everything main needs beyond the HTTP routes.
type App struct {
	Poller *scheduler.Poller
	Hub    *chatws.Hub
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) (*App, error) {
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	progressRepo := repository.NewGoalProgressRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)

	llmService, err := services.NewLLMService(cfg.AnthropicAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, err
	}

	contextCache, err := chat.NewContextCache(messageRepo, cfg.ContextWindow, cfg.ContextCacheUsers)
	if err != nil {
		return nil, err
	}

	chatService := services.NewChatService(userRepo, messageRepo, contextCache, llmService)
	motivationService := services.NewMotivationService(llmService)
	goalService := services.NewGoalService(userRepo, progressRepo, messageRepo)
	profileService := services.NewProfileService(userRepo)

	hub := chatws.NewHub()

	evaluator := scheduler.NewEvaluator(cfg.MorningHour, cfg.MiddayHour, cfg.EveningHour)
	poller := scheduler.NewPoller(
		userRepo,
		messageRepo,
		deliveryRepo,
		hub,
		motivationService,
		evaluator,
		cfg.TickInterval,
		cfg.PerUserTimeout,
		cfg.PollConcurrency,
	)

	profileHandler := handlers.NewProfileHandler(profileService)
	goalHandler := handlers.NewGoalHandler(goalService)
	chatHandler := handlers.NewChatHandler(chatService, motivationService, profileService, messageRepo, messageRepo, hub)

	api := app.Group("/api/v1")

	api.Post("/setup", profileHandler.Setup)

	users := api.Group("/users/:id")
	users.Get("/profile", profileHandler.GetProfile)
	users.Put("/timezone", profileHandler.SetTimezone)
	users.Put("/checkins", profileHandler.SetCheckIns)

	users.Post("/messages", profileHandler.AddCustomMessage)
	users.Get("/messages", profileHandler.ListCustomMessages)
	users.Delete("/messages", profileHandler.ClearCustomMessages)
	users.Post("/messages/reset", profileHandler.ResetCustomMessages)

	users.Post("/goals", goalHandler.AddGoal)
	users.Get("/goals", goalHandler.ListGoals)
	users.Post("/goals/:goalId/complete", goalHandler.CompleteGoal)
	users.Get("/progress", goalHandler.GetProgress)

	users.Post("/chat", chatHandler.SendChatMessage)
	users.Post("/motivate", chatHandler.Motivate)
	users.Get("/history", chatHandler.GetHistory)

	api.Use("/ws", chatHandler.WebSocketUpgrade)
	api.Get("/ws", websocket.New(chatHandler.HandleWebSocket))

	return &App{Poller: poller, Hub: hub}, nil
}
