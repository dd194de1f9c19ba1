package services

import "github.com/dkoroteev/stride/internal/models"

// RunStats is a snapshot aggregate over a collection of runs. Every statistic
// is recomputed in full from the backing slice; run collections are small
// per-user histories, so the O(n) recompute on AddRun is acceptable. An empty
// collection reports exactly zero for every figure.
type RunStats struct {
	runs []models.Run

	MeanSpeed             float64
	MeanDistance          float64
	MeanDuration          float64
	MeanAltitudeAscended  float64
	MeanAltitudeDescended float64

	TotalDistance          float64
	TotalAltitudeAscended  float64
	TotalAltitudeDescended float64
}

func NewRunStats(runs []models.Run) *RunStats {
	stats := &RunStats{runs: runs}
	stats.recompute()
	return stats
}

// AddRun appends one run to the backing collection and recomputes everything.
func (stats *RunStats) AddRun(run models.Run) {
	stats.runs = append(stats.runs, run)
	stats.recompute()
}

func (stats *RunStats) IsEmpty() bool {
	return len(stats.runs) == 0
}

func (stats *RunStats) Count() int {
	return len(stats.runs)
}

func (stats *RunStats) recompute() {
	stats.MeanSpeed = 0
	stats.MeanDistance = 0
	stats.MeanDuration = 0
	stats.MeanAltitudeAscended = 0
	stats.MeanAltitudeDescended = 0
	stats.TotalDistance = 0
	stats.TotalAltitudeAscended = 0
	stats.TotalAltitudeDescended = 0

	if len(stats.runs) == 0 {
		return
	}

	var sumSpeed, sumDuration float64
	for _, run := range stats.runs {
		sumSpeed += run.Speed()
		sumDuration += run.Duration
		stats.TotalDistance += run.Distance
		stats.TotalAltitudeAscended += run.AltitudeAscended
		stats.TotalAltitudeDescended += run.AltitudeDescended
	}

	count := float64(len(stats.runs))
	stats.MeanSpeed = sumSpeed / count
	stats.MeanDistance = stats.TotalDistance / count
	stats.MeanDuration = sumDuration / count
	stats.MeanAltitudeAscended = stats.TotalAltitudeAscended / count
	stats.MeanAltitudeDescended = stats.TotalAltitudeDescended / count
}
