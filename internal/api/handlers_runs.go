package api

import (
	"errors"
	"time"

	"github.com/dkoroteev/stride/internal/models"
	"github.com/dkoroteev/stride/internal/services"
	"github.com/gofiber/fiber/v2"
)

type runView struct {
	ID                uint    `json:"id"`
	Date              string  `json:"date"`
	Duration          float64 `json:"duration"`
	Distance          float64 `json:"distance"`
	Speed             float64 `json:"speed"`
	AltitudeAscended  float64 `json:"altitude_ascended"`
	AltitudeDescended float64 `json:"altitude_descended"`
	CaloriesBurned    int64   `json:"calories_burned"`
}

func (handler *Handler) buildRunView(run models.Run) runView {
	return runView{
		ID:                run.ID,
		Date:              services.DateAtLocation(run.Date, handler.location).Format(profileDateLayout),
		Duration:          run.Duration,
		Distance:          run.Distance,
		Speed:             run.Speed(),
		AltitudeAscended:  run.RoundedAltitudeAscended(),
		AltitudeDescended: run.RoundedAltitudeDescended(),
		CaloriesBurned:    run.CaloriesBurned,
	}
}

// RecordRunSample feeds one live sample into the run ledger.
func (handler *Handler) RecordRunSample(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := samplePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	date, err := time.ParseInLocation(sampleDateLayout, payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid sample date")
	}
	if payload.Duration < 0 || payload.Distance < 0 {
		return apiError(c, fiber.StatusBadRequest, "duration and distance must be non-negative")
	}

	err = handler.runLedger.RecordSample(user.ID, payload.Duration, payload.Distance, payload.RelativeAltitude, date)
	if errors.Is(err, services.ErrNoOpenRun) {
		return apiError(c, fiber.StatusConflict, "no open run for sample")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to record sample")
	}
	return apiOK(c)
}

// GetRuns lists the user's runs inside an optional date range.
func (handler *Handler) GetRuns(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	runs, err := handler.repositories.Runs.ListByUserRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch runs")
	}

	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, handler.buildRunView(run))
	}
	return c.JSON(fiber.Map{"runs": views})
}
