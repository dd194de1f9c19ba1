package api

import (
	"math"
	"net/http"
	"testing"
)

type runsListResponse struct {
	Runs []struct {
		ID                uint    `json:"id"`
		Date              string  `json:"date"`
		Duration          float64 `json:"duration"`
		Distance          float64 `json:"distance"`
		Speed             float64 `json:"speed"`
		AltitudeAscended  float64 `json:"altitude_ascended"`
		AltitudeDescended float64 `json:"altitude_descended"`
	} `json:"runs"`
}

func TestRecordedSessionAppearsInRunList(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "session@example.com", "StrongPass1")

	mustRecordSample(t, app, authCookie, 0, 0, 0, "01-06-2024")
	mustRecordSample(t, app, authCookie, 30, 110, 5, "01-06-2024")
	mustRecordSample(t, app, authCookie, 60, 230, -2, "01-06-2024")
	mustRecordSample(t, app, authCookie, 90, 330, 3, "01-06-2024")

	list := runsListResponse{}
	getJSON(t, app, authCookie, "/api/runs", http.StatusOK, &list)

	if len(list.Runs) != 1 {
		t.Fatalf("run count = %d, want 1", len(list.Runs))
	}
	run := list.Runs[0]
	if run.Date != "2024-06-01" {
		t.Fatalf("run date = %q, want 2024-06-01", run.Date)
	}
	if run.Duration != 90 || run.Distance != 330 {
		t.Fatalf("run totals = (%v, %v), want (90, 330)", run.Duration, run.Distance)
	}
	if run.AltitudeAscended != 8 || run.AltitudeDescended != 2 {
		t.Fatalf("run altitude = (%v, %v), want (8, 2)", run.AltitudeAscended, run.AltitudeDescended)
	}
	if math.Abs(run.Speed-330.0/90.0) > 1e-9 {
		t.Fatalf("run speed = %v, want %v", run.Speed, 330.0/90.0)
	}
}

func TestSampleWithoutOpenRunConflicts(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "noopen@example.com", "StrongPass1")

	response := recordSample(t, app, authCookie, 30, 100, 1, "01-06-2024")
	defer response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("sample without open run status = %d, want 409", response.StatusCode)
	}

	mustRecordSample(t, app, authCookie, 0, 0, 0, "01-06-2024")
	mustRecordSample(t, app, authCookie, 30, 100, 1, "01-06-2024")
}

func TestEachBoundaryOpensItsOwnRun(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "multi@example.com", "StrongPass1")

	mustRecordSample(t, app, authCookie, 0, 0, 0, "01-06-2024")
	mustRecordSample(t, app, authCookie, 45, 150, 2, "01-06-2024")
	mustRecordSample(t, app, authCookie, 0, 0, 0, "02-06-2024")
	mustRecordSample(t, app, authCookie, 60, 300, -4, "02-06-2024")

	list := runsListResponse{}
	getJSON(t, app, authCookie, "/api/runs", http.StatusOK, &list)
	if len(list.Runs) != 2 {
		t.Fatalf("run count = %d, want 2", len(list.Runs))
	}
	if list.Runs[0].Distance != 150 || list.Runs[1].Distance != 300 {
		t.Fatalf("run distances = (%v, %v), want (150, 300)", list.Runs[0].Distance, list.Runs[1].Distance)
	}
}

func TestRunListRangeFiltering(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "range@example.com", "StrongPass1")

	mustRecordSample(t, app, authCookie, 0, 0, 0, "01-06-2024")
	mustRecordSample(t, app, authCookie, 30, 100, 0, "01-06-2024")
	mustRecordSample(t, app, authCookie, 0, 0, 0, "15-06-2024")
	mustRecordSample(t, app, authCookie, 40, 200, 0, "15-06-2024")

	list := runsListResponse{}
	getJSON(t, app, authCookie, "/api/runs?from=2024-06-10&to=2024-06-20", http.StatusOK, &list)
	if len(list.Runs) != 1 {
		t.Fatalf("filtered run count = %d, want 1", len(list.Runs))
	}
	if list.Runs[0].Date != "2024-06-15" {
		t.Fatalf("filtered run date = %q, want 2024-06-15", list.Runs[0].Date)
	}

	getJSON(t, app, authCookie, "/api/runs?from=2024-06-20&to=2024-06-10", http.StatusBadRequest, nil)
}

func TestStatsOverviewAggregatesRuns(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "stats@example.com", "StrongPass1")

	empty := struct {
		Count   int  `json:"count"`
		IsEmpty bool `json:"is_empty"`
	}{}
	getJSON(t, app, authCookie, "/api/stats/overview", http.StatusOK, &empty)
	if empty.Count != 0 || !empty.IsEmpty {
		t.Fatalf("empty overview = %+v, want count 0 and is_empty true", empty)
	}

	mustRecordSample(t, app, authCookie, 0, 0, 0, "01-06-2024")
	mustRecordSample(t, app, authCookie, 100, 200, 5, "01-06-2024")
	mustRecordSample(t, app, authCookie, 0, 0, 0, "02-06-2024")
	mustRecordSample(t, app, authCookie, 50, 200, -3, "02-06-2024")

	overview := struct {
		Count                  int     `json:"count"`
		IsEmpty                bool    `json:"is_empty"`
		MeanSpeed              float64 `json:"mean_speed"`
		MeanDistance           float64 `json:"mean_distance"`
		MeanDuration           float64 `json:"mean_duration"`
		TotalDistance          float64 `json:"total_distance"`
		TotalAltitudeAscended  float64 `json:"total_altitude_ascended"`
		TotalAltitudeDescended float64 `json:"total_altitude_descended"`
	}{}
	getJSON(t, app, authCookie, "/api/stats/overview", http.StatusOK, &overview)

	if overview.Count != 2 || overview.IsEmpty {
		t.Fatalf("overview count = %d (is_empty %v), want 2 runs", overview.Count, overview.IsEmpty)
	}
	if overview.TotalDistance != 400 {
		t.Fatalf("total distance = %v, want 400", overview.TotalDistance)
	}
	if overview.MeanDistance != 200 || overview.MeanDuration != 75 {
		t.Fatalf("means = (%v, %v), want (200, 75)", overview.MeanDistance, overview.MeanDuration)
	}
	wantMeanSpeed := (200.0/100.0 + 200.0/50.0) / 2.0
	if math.Abs(overview.MeanSpeed-wantMeanSpeed) > 1e-9 {
		t.Fatalf("mean speed = %v, want %v", overview.MeanSpeed, wantMeanSpeed)
	}
	if overview.TotalAltitudeAscended != 5 || overview.TotalAltitudeDescended != 3 {
		t.Fatalf("altitude totals = (%v, %v), want (5, 3)", overview.TotalAltitudeAscended, overview.TotalAltitudeDescended)
	}
}
