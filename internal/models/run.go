package models

import (
	"math"
	"time"
)

// Run is one logged running session. Duration and Distance hold the most
// recent cumulative-within-session values reported by the sample stream;
// AltitudeAscended and AltitudeDescended are non-decreasing sums accumulated
// from signed altitude deltas. A run has no explicit closed state: it stops
// receiving samples once the owner's open-run cursor moves to a newer run.
type Run struct {
	ID                uint      `gorm:"primaryKey"`
	UserID            uint      `gorm:"not null;index:idx_runs_user_date"`
	Date              time.Time `gorm:"type:date;not null;index:idx_runs_user_date"`
	Duration          float64   `gorm:"not null;default:0"`
	Distance          float64   `gorm:"not null;default:0"`
	AltitudeAscended  float64   `gorm:"not null;default:0"`
	AltitudeDescended float64   `gorm:"not null;default:0"`
	CaloriesBurned    int64     `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Speed returns the mean speed in metres per second. A run whose duration is
// still zero reports 0 rather than letting +Inf leak into aggregates.
func (run Run) Speed() float64 {
	if run.Duration == 0 {
		return 0
	}
	return run.Distance / run.Duration
}

// RoundedAltitudeAscended reports the climbed altitude rounded up to three
// decimal places, the display convention for per-run altitude figures.
func (run Run) RoundedAltitudeAscended() float64 {
	return roundUpThousandths(run.AltitudeAscended)
}

func (run Run) RoundedAltitudeDescended() float64 {
	return roundUpThousandths(run.AltitudeDescended)
}

func roundUpThousandths(value float64) float64 {
	return math.Ceil(value*1000) / 1000
}
