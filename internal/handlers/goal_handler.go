package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
	"github.com/EricStrohmaier/motivations-bot/internal/scheduler"
)

type goalApplicationService interface {
	AddGoal(ctx context.Context, userID int64, text string) (*models.Goal, error)
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
	CompleteGoal(ctx context.Context, userID int64, goalID uuid.UUID) (*models.Goal, error)
	GetProgress(ctx context.Context, userID int64) ([]models.GoalProgress, error)
}

type GoalHandler struct {
	service goalApplicationService
}

func NewGoalHandler(service goalApplicationService) *GoalHandler {
	return &GoalHandler{service: service}
}

type goalView struct {
	models.Goal
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

func (h *GoalHandler) AddGoal(c *fiber.Ctx) error {
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

	goal, err := h.service.AddGoal(c.Context(), userID, req.Text)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	goals, err := h.service.ListGoals(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	now := time.Now().UTC()
	views := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		view := goalView{Goal: goal}
		if goal.Deadline != nil {
			days := scheduler.DaysUntil(*goal.Deadline, now)
			view.DaysRemaining = &days
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{"goals": views})
}

func (h *GoalHandler) CompleteGoal(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid goal id"})
	}

	goal, err := h.service.CompleteGoal(c.Context(), userID, goalID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"completed": goal})
}

func (h *GoalHandler) GetProgress(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	progress, err := h.service.GetProgress(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"progress": progress})
}
