package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dkoroteev/stride/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ExportSummary reports how many runs the requested range would export.
func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	summary, err := handler.exportService.BuildSummary(user.ID, from, to, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build summary")
	}
	return c.JSON(summary)
}

// ExportCSV streams the runs in range as a CSV attachment.
func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	rows, err := handler.exportService.BuildCSVRows(user.ID, from, to, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch runs")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	now := time.Now().In(handler.location)
	filename := fmt.Sprintf("stride-export-%s.csv", now.Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(output.Bytes())
}
