package api

import (
	"github.com/dkoroteev/stride/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetProfile returns the authenticated user's profile, open-run cursor
// included so a UI can tell whether a session is in progress.
func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{
		"id":               user.ID,
		"name":             user.Name,
		"email":            user.Email,
		"date_of_birth":    services.DateAtLocation(user.DateOfBirth, handler.location).Format(profileDateLayout),
		"sex":              user.Sex,
		"height_metres":    user.HeightMetres,
		"weight_kilograms": user.WeightKilograms,
		"open_run_id":      user.OpenRunID,
	})
}
