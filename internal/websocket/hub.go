// Package chatws carries the user-facing chat sessions. The hub doubles
// as the scheduler's outbound transport: a send fails when the user has
// no live session, and failed sends are never recorded as delivered.
package chatws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
)

type Message struct {
	Type      string `json:"type"`
	UserID    int64  `json:"user_id,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID int64
	send   chan []byte
}

type replier interface {
	Reply(ctx context.Context, userID int64, text string) (string, error)
}

type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := set[client]; exists {
		delete(set, client)
		close(client.send)
	}
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

// SendMessage pushes a text to every live session of the user. It
// reports an error when nothing could be handed off, so callers can
// treat the message as undelivered.
func (h *Hub) SendMessage(_ context.Context, userID int64, text string) error {
	payload, err := json.Marshal(Message{
		Type:      "message",
		UserID:    userID,
		Content:   text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[userID]
	if !ok || len(set) == 0 {
		return fmt.Errorf("user %d has no active session", userID)
	}

	handedOff := false
	for client := range set {
		select {
		case client.send <- payload:
			handedOff = true
		default:
			// Slow consumer: drop the session rather than block.
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
	if !handedOff {
		return fmt.Errorf("user %d has no responsive session", userID)
	}
	return nil
}

// ReadPump consumes inbound frames and routes free-text messages
// through the chat service, echoing the assistant's reply back.
func (c *Client) ReadPump(service replier) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			c.writeError("invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			c.writeError("unsupported message type")
			continue
		}

		reply, err := service.Reply(context.Background(), c.userID, incoming.Content)
		if err != nil {
			log.Printf("chat hub: reply for user %d failed: %v", c.userID, err)
			c.writeError("failed to process message")
			continue
		}

		if err := c.hub.SendMessage(context.Background(), c.userID, reply); err != nil {
			log.Printf("chat hub: echo to user %d failed: %v", c.userID, err)
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (c *Client) writeError(message string) {
	payload, err := json.Marshal(Message{
		Type:      "error",
		Content:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
