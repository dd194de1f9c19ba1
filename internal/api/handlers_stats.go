package api

import (
	"github.com/dkoroteev/stride/internal/services"
	"github.com/gofiber/fiber/v2"
)

type statsOverview struct {
	Count                  int     `json:"count"`
	IsEmpty                bool    `json:"is_empty"`
	MeanSpeed              float64 `json:"mean_speed"`
	MeanDistance           float64 `json:"mean_distance"`
	MeanDuration           float64 `json:"mean_duration"`
	MeanAltitudeAscended   float64 `json:"mean_altitude_ascended"`
	MeanAltitudeDescended  float64 `json:"mean_altitude_descended"`
	TotalDistance          float64 `json:"total_distance"`
	TotalAltitudeAscended  float64 `json:"total_altitude_ascended"`
	TotalAltitudeDescended float64 `json:"total_altitude_descended"`
}

// GetStatsOverview aggregates the runs in range into mean/total statistics.
func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
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

	stats := services.NewRunStats(runs)
	return c.JSON(statsOverview{
		Count:                  stats.Count(),
		IsEmpty:                stats.IsEmpty(),
		MeanSpeed:              stats.MeanSpeed,
		MeanDistance:           stats.MeanDistance,
		MeanDuration:           stats.MeanDuration,
		MeanAltitudeAscended:   stats.MeanAltitudeAscended,
		MeanAltitudeDescended:  stats.MeanAltitudeDescended,
		TotalDistance:          stats.TotalDistance,
		TotalAltitudeAscended:  stats.TotalAltitudeAscended,
		TotalAltitudeDescended: stats.TotalAltitudeDescended,
	})
}
