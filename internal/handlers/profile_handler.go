package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type profileApplicationService interface {
	Setup(ctx context.Context, userID int64, username string) (*models.UserProfile, error)
	Get(ctx context.Context, userID int64) (*models.UserProfile, error)
	SetTimezone(ctx context.Context, userID int64, timezone string) error
	SetCheckIns(ctx context.Context, userID int64, enabled bool) error
	AddCustomMessage(ctx context.Context, userID int64, message string) error
	ClearCustomMessages(ctx context.Context, userID int64) error
	ResetCustomMessages(ctx context.Context, userID int64) error
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service profileApplicationService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type setupRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (h *ProfileHandler) Setup(c *fiber.Ctx) error {
	var req setupRequest
	if err := c.BodyParser(&req); err != nil || req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	profile, err := h.service.Setup(c.Context(), req.UserID, req.Username)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	profile, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) SetTimezone(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Timezone string `json:"timezone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.SetTimezone(c.Context(), userID, req.Timezone); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"timezone": req.Timezone})
}

func (h *ProfileHandler) SetCheckIns(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.SetCheckIns(c.Context(), userID, req.Enabled); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"check_in_enabled": req.Enabled})
}

func (h *ProfileHandler) AddCustomMessage(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.AddCustomMessage(c.Context(), userID, req.Message); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "added"})
}

func (h *ProfileHandler) ListCustomMessages(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	profile, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"messages": profile.CustomMotivationMessages})
}

func (h *ProfileHandler) ClearCustomMessages(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.ClearCustomMessages(c.Context(), userID); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "cleared"})
}

func (h *ProfileHandler) ResetCustomMessages(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.ResetCustomMessages(c.Context(), userID); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "reset"})
}
