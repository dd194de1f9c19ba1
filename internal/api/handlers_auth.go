package api

import (
	"errors"
	"time"

	"github.com/dkoroteev/stride/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	payload := registerPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	dateOfBirth, err := time.ParseInLocation(profileDateLayout, payload.DateOfBirth, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date of birth")
	}

	user, err := handler.authService.Register(services.Registration{
		Name:            payload.Name,
		Email:           payload.Email,
		Password:        payload.Password,
		DateOfBirth:     dateOfBirth,
		Sex:             payload.Sex,
		HeightMetres:    payload.HeightMetres,
		WeightKilograms: payload.WeightKilograms,
	})
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "user already exists")
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid email or password")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password too weak")
	case errors.Is(err, services.ErrInvalidSex):
		return apiError(c, fiber.StatusBadRequest, "invalid sex value")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := loginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}

	user, err := handler.authService.Authenticate(payload.Email, payload.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
		return apiError(c, fiber.StatusUnauthorized, "user doesn't exist")
	case errors.Is(err, services.ErrWrongPassword):
		handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
		return apiError(c, fiber.StatusUnauthorized, "incorrect password")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to log in")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, payload.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return apiOK(c)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := changePasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.authService.ChangePassword(user.ID, payload.CurrentPassword, payload.NewPassword)
	switch {
	case errors.Is(err, services.ErrWrongPassword):
		return apiError(c, fiber.StatusUnauthorized, "incorrect password")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password too weak")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to change password")
	}
	return apiOK(c)
}
