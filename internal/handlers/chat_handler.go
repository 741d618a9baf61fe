package handlers

import (
	"context"
	"strconv"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
	chatws "github.com/EricStrohmaier/motivations-bot/internal/websocket"
)

type chatApplicationService interface {
	Reply(ctx context.Context, userID int64, text string) (string, error)
}

type motivationSender interface {
	MotivationMessage(ctx context.Context, user *models.UserProfile) (string, error)
}

type profileReader interface {
	Get(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type historyReader interface {
	GetRecentMessages(ctx context.Context, userID int64, limit int) ([]models.MessageHistory, error)
}

type historyWriter interface {
	AppendMessage(ctx context.Context, userID int64, text string, messageType models.MessageType) error
}

type ChatHandler struct {
	service    chatApplicationService
	motivation motivationSender
	profiles   profileReader
	history    historyReader
	appender   historyWriter
	hub        *chatws.Hub
}

func NewChatHandler(
	service chatApplicationService,
	motivation motivationSender,
	profiles profileReader,
	history historyReader,
	appender historyWriter,
	hub *chatws.Hub,
) *ChatHandler {
	return &ChatHandler{
		service:    service,
		motivation: motivation,
		profiles:   profiles,
		history:    history,
		appender:   appender,
		hub:        hub,
	}
}

// SendChatMessage is the HTTP fallback for inbound messages; the
// websocket path in ReadPump covers live sessions.
func (h *ChatHandler) SendChatMessage(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reply, err := h.service.Reply(c.Context(), userID, req.Text)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"reply": reply})
}

// Motivate sends an on-demand motivation message.
func (h *ChatHandler) Motivate(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	profile, err := h.profiles.Get(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	message, err := h.motivation.MotivationMessage(c.Context(), profile)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not generate a motivation message right now"})
	}

	if err := h.appender.AppendMessage(c.Context(), userID, message, models.MessageMotivation); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": message})
}

// GetHistory returns recent notification log entries, newest first.
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	limit := c.QueryInt("limit", 5)
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	messages, err := h.history.GetRecentMessages(c.Context(), userID, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}

// WebSocketUpgrade rejects plain HTTP requests on the ws route.
func (h *ChatHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			return fiber.ErrUnauthorized
		}
		c.Locals("userID", userID)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *ChatHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, ok := conn.Locals("userID").(int64)
	if !ok {
		_ = conn.Close()
		return
	}

	client := chatws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump(h.service)
}
