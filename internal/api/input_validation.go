package api

import (
	"errors"
	"strings"
	"time"

	"github.com/dkoroteev/stride/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	profileDateLayout = "2006-01-02"
	sampleDateLayout  = "02-01-2006"
)

type registerPayload struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	DateOfBirth     string  `json:"date_of_birth"`
	Sex             string  `json:"sex"`
	HeightMetres    float64 `json:"height_metres"`
	WeightKilograms float64 `json:"weight_kilograms"`
}

type loginPayload struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type samplePayload struct {
	Duration         float64 `json:"duration"`
	Distance         float64 `json:"distance"`
	RelativeAltitude float64 `json:"relative_altitude"`
	Date             string  `json:"date"`
}

var errInvalidRangeQuery = errors.New("invalid date range")

// parseRangeQuery reads optional from/to query parameters (YYYY-MM-DD) into a
// half-open [from, to+1day) interval. Missing bounds stay nil.
func (handler *Handler) parseRangeQuery(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var fromStart *time.Time
	var toEnd *time.Time

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := time.ParseInLocation(profileDateLayout, raw, handler.location)
		if err != nil {
			return nil, nil, errInvalidRangeQuery
		}
		start := services.DateAtLocation(parsed, handler.location)
		fromStart = &start
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := time.ParseInLocation(profileDateLayout, raw, handler.location)
		if err != nil {
			return nil, nil, errInvalidRangeQuery
		}
		_, end := services.DayRange(parsed, handler.location)
		toEnd = &end
	}
	if fromStart != nil && toEnd != nil && toEnd.Before(*fromStart) {
		return nil, nil, errInvalidRangeQuery
	}

	return fromStart, toEnd, nil
}
