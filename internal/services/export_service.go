package services

import (
	"strconv"
	"time"

	"github.com/dkoroteev/stride/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Date",
	"Duration (s)",
	"Distance (m)",
	"Speed (m/s)",
	"Altitude ascended (m)",
	"Altitude descended (m)",
}

type ExportRunReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Run, error)
}

// ExportService renders a user's run history for download.
type ExportService struct {
	runs ExportRunReader
}

type ExportSummary struct {
	TotalRuns int    `json:"total_runs"`
	HasData   bool   `json:"has_data"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

type ExportCSVRow struct {
	Date              string
	Duration          float64
	Distance          float64
	Speed             float64
	AltitudeAscended  float64
	AltitudeDescended float64
}

func NewExportService(runs ExportRunReader) *ExportService {
	return &ExportService{runs: runs}
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time, location *time.Location) (ExportSummary, error) {
	runs, err := service.runs.ListByUserRange(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(runs) == 0 {
		return ExportSummary{}, nil
	}

	first := runs[0].Date
	last := runs[0].Date
	for _, run := range runs[1:] {
		if run.Date.Before(first) {
			first = run.Date
		}
		if run.Date.After(last) {
			last = run.Date
		}
	}

	return ExportSummary{
		TotalRuns: len(runs),
		HasData:   true,
		DateFrom:  DateAtLocation(first, location).Format(exportDateLayout),
		DateTo:    DateAtLocation(last, location).Format(exportDateLayout),
	}, nil
}

// BuildCSVRows materializes the runs in range as export rows. Altitude
// figures keep the round-up-to-three-decimals display convention.
func (service *ExportService) BuildCSVRows(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]ExportCSVRow, error) {
	runs, err := service.runs.ListByUserRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, ExportCSVRow{
			Date:              DateAtLocation(run.Date, location).Format(exportDateLayout),
			Duration:          run.Duration,
			Distance:          run.Distance,
			Speed:             run.Speed(),
			AltitudeAscended:  run.RoundedAltitudeAscended(),
			AltitudeDescended: run.RoundedAltitudeDescended(),
		})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Date,
		formatExportFloat(row.Duration),
		formatExportFloat(row.Distance),
		formatExportFloat(row.Speed),
		formatExportFloat(row.AltitudeAscended),
		formatExportFloat(row.AltitudeDescended),
	}
}

func formatExportFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
