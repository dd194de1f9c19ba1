package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// importDateLayout matches the dd-mm-yyyy dates in exported activity logs.
const importDateLayout = "02-01-2006"

// Sample is one parsed import row. Duration and Distance are cumulative
// within the session; RelativeAltitude is the signed delta since the previous
// sample.
type Sample struct {
	Duration         float64
	Distance         float64
	RelativeAltitude float64
	Date             time.Time
}

type SampleRecorder interface {
	RecordSample(userID uint, duration float64, distance float64, relativeAltitude float64, date time.Time) error
}

// ImportService replays activity-log files through the run ledger. Rows are
// applied strictly in file order: the session-boundary protocol is stateful,
// so reordering or parallelizing rows would corrupt the reconstruction.
type ImportService struct {
	ledger SampleRecorder
}

// ImportSummary describes one completed (or aborted) import.
type ImportSummary struct {
	ImportID     string `json:"import_id"`
	RowsImported int    `json:"rows_imported"`
	RunsStarted  int    `json:"runs_started"`
	RowsSkipped  int    `json:"rows_skipped"`
}

func NewImportService(ledger SampleRecorder) *ImportService {
	return &ImportService{ledger: ledger}
}

// ParseSampleRow parses one `duration,distance,relativeAltitude,date` line.
func ParseSampleRow(line string) (Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return Sample{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("parse duration %q: %w", fields[0], err)
	}
	distance, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("parse distance %q: %w", fields[1], err)
	}
	relativeAltitude, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("parse relative altitude %q: %w", fields[2], err)
	}
	date, err := time.Parse(importDateLayout, strings.TrimSpace(fields[3]))
	if err != nil {
		return Sample{}, fmt.Errorf("parse date %q: %w", fields[3], err)
	}

	return Sample{
		Duration:         duration,
		Distance:         distance,
		RelativeAltitude: relativeAltitude,
		Date:             date,
	}, nil
}

// ImportCSV replays every row of reader through the ledger for one user. A
// malformed row aborts the whole import; rows already replayed stay
// committed, there is no cross-row transaction. A row the ledger drops for a
// missing open run is counted and skipped, not fatal.
func (service *ImportService) ImportCSV(userID uint, reader io.Reader) (ImportSummary, error) {
	summary := ImportSummary{ImportID: uuid.NewString()}

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sample, err := ParseSampleRow(line)
		if err != nil {
			return summary, fmt.Errorf("import %s: line %d: %w", summary.ImportID, lineNumber, err)
		}

		err = service.ledger.RecordSample(userID, sample.Duration, sample.Distance, sample.RelativeAltitude, sample.Date)
		if errors.Is(err, ErrNoOpenRun) {
			summary.RowsSkipped++
			log.Printf("import %s: line %d dropped: %v", summary.ImportID, lineNumber, err)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("import %s: line %d: %w", summary.ImportID, lineNumber, err)
		}

		summary.RowsImported++
		if IsSessionBoundary(sample.Duration, sample.Distance, sample.RelativeAltitude) {
			summary.RunsStarted++
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("import %s: read: %w", summary.ImportID, err)
	}

	return summary, nil
}
