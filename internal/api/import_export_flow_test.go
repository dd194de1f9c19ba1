package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func uploadImportFile(t *testing.T, app *fiber.App, authCookie string, contents string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "runs.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, contents); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/import/csv", &body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	request.Header.Set("Cookie", authCookie)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	return response
}

func TestImportReplaysFileIntoRuns(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "import@example.com", "StrongPass1")

	contents := strings.Join([]string{
		"0,0,0,01-06-2024",
		"30,110,5,01-06-2024",
		"60,230,-2,01-06-2024",
		"0,0,0,02-06-2024",
		"45,180,1.5,02-06-2024",
	}, "\n")

	response := uploadImportFile(t, app, authCookie, contents)
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		t.Fatalf("import status = %d, want 200 (body %s)", response.StatusCode, body)
	}

	summary := struct {
		ImportID     string `json:"import_id"`
		RowsImported int    `json:"rows_imported"`
		RunsStarted  int    `json:"runs_started"`
		RowsSkipped  int    `json:"rows_skipped"`
	}{}
	decodeJSONBody(t, response, &summary)
	if summary.ImportID == "" {
		t.Fatal("expected a non-empty import id")
	}
	if summary.RowsImported != 5 || summary.RunsStarted != 2 || summary.RowsSkipped != 0 {
		t.Fatalf("summary = %+v, want 5 rows, 2 runs, 0 skipped", summary)
	}

	list := runsListResponse{}
	getJSON(t, app, authCookie, "/api/runs", http.StatusOK, &list)
	if len(list.Runs) != 2 {
		t.Fatalf("run count after import = %d, want 2", len(list.Runs))
	}
	if list.Runs[0].Duration != 60 || list.Runs[0].Distance != 230 {
		t.Fatalf("first imported run = (%v, %v), want (60, 230)", list.Runs[0].Duration, list.Runs[0].Distance)
	}
	if list.Runs[0].AltitudeAscended != 5 || list.Runs[0].AltitudeDescended != 2 {
		t.Fatalf("first imported altitude = (%v, %v), want (5, 2)", list.Runs[0].AltitudeAscended, list.Runs[0].AltitudeDescended)
	}
}

func TestImportMalformedRowKeepsEarlierRows(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "badimport@example.com", "StrongPass1")

	contents := strings.Join([]string{
		"0,0,0,01-06-2024",
		"30,110,5,01-06-2024",
		"not,a,valid,row",
		"60,230,-2,01-06-2024",
	}, "\n")

	response := uploadImportFile(t, app, authCookie, contents)
	if response.StatusCode != http.StatusUnprocessableEntity {
		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		t.Fatalf("malformed import status = %d, want 422 (body %s)", response.StatusCode, body)
	}
	failure := struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}{}
	decodeJSONBody(t, response, &failure)
	if !strings.Contains(failure.Detail, "line 3") {
		t.Fatalf("failure detail = %q, want mention of line 3", failure.Detail)
	}

	list := runsListResponse{}
	getJSON(t, app, authCookie, "/api/runs", http.StatusOK, &list)
	if len(list.Runs) != 1 {
		t.Fatalf("run count after aborted import = %d, want 1", len(list.Runs))
	}
	if list.Runs[0].Distance != 110 {
		t.Fatalf("committed run distance = %v, want 110", list.Runs[0].Distance)
	}
}

func TestImportSkipsRowsBeforeFirstBoundary(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "skipimport@example.com", "StrongPass1")

	contents := strings.Join([]string{
		"30,110,5,01-06-2024",
		"0,0,0,01-06-2024",
		"45,150,2,01-06-2024",
	}, "\n")

	response := uploadImportFile(t, app, authCookie, contents)
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		t.Fatalf("import status = %d, want 200 (body %s)", response.StatusCode, body)
	}
	summary := struct {
		RowsImported int `json:"rows_imported"`
		RunsStarted  int `json:"runs_started"`
		RowsSkipped  int `json:"rows_skipped"`
	}{}
	decodeJSONBody(t, response, &summary)
	if summary.RowsSkipped != 1 || summary.RowsImported != 2 || summary.RunsStarted != 1 {
		t.Fatalf("summary = %+v, want 1 skipped, 2 imported, 1 run", summary)
	}
}

func TestExportCSVAndSummary(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "export@example.com", "StrongPass1")

	mustRecordSample(t, app, authCookie, 0, 0, 0, "03-05-2024")
	mustRecordSample(t, app, authCookie, 120, 500, 4, "03-05-2024")
	mustRecordSample(t, app, authCookie, 0, 0, 0, "21-05-2024")
	mustRecordSample(t, app, authCookie, 60, 250, -1, "21-05-2024")

	summary := struct {
		TotalRuns int    `json:"total_runs"`
		HasData   bool   `json:"has_data"`
		DateFrom  string `json:"date_from"`
		DateTo    string `json:"date_to"`
	}{}
	getJSON(t, app, authCookie, "/api/export/summary", http.StatusOK, &summary)
	if summary.TotalRuns != 2 || !summary.HasData {
		t.Fatalf("export summary = %+v, want 2 runs with data", summary)
	}
	if summary.DateFrom != "2024-05-03" || summary.DateTo != "2024-05-21" {
		t.Fatalf("export bounds = (%q, %q), want (2024-05-03, 2024-05-21)", summary.DateFrom, summary.DateTo)
	}

	request := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	request.Header.Set("Cookie", authCookie)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want 200", response.StatusCode)
	}
	if got := response.Header.Get("Content-Type"); !strings.Contains(got, "text/csv") {
		t.Fatalf("export content type = %q, want text/csv", got)
	}
	if got := response.Header.Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("export disposition = %q, want attachment", got)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read export body: %v", err)
	}
	rendered := string(body)
	if !strings.Contains(rendered, "Date,Duration (s),Distance (m)") {
		t.Fatalf("export missing header row: %q", rendered)
	}
	if !strings.Contains(rendered, "2024-05-03,120,500") {
		t.Fatalf("export missing first run row: %q", rendered)
	}
	if !strings.Contains(rendered, "2024-05-21,60,250") {
		t.Fatalf("export missing second run row: %q", rendered)
	}
}
