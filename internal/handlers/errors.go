package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/EricStrohmaier/motivations-bot/internal/services"
)

func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrGoalNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Goal not found"})
	case errors.Is(err, services.ErrInvalidTimezone):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid timezone. Please provide a valid timezone (e.g., 'Europe/London', 'America/New_York')"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid user id")
	}
	return int64(userID), nil
}
