package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dkoroteev/stride/internal/db"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithCookieSecure(t, false)
}

func newTestAppWithCookieSecure(t *testing.T, cookieSecure bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "stride-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret-key", nil, cookieSecure)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func postJSON(t *testing.T, app *fiber.App, authCookie string, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload for %s: %v", path, err)
	}
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return response
}

func getJSON(t *testing.T, app *fiber.App, authCookie string, path string, expectedStatus int, target any) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != expectedStatus {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("GET %s expected status %d, got %d (body %s)", path, expectedStatus, response.StatusCode, body)
	}
	if target != nil {
		if err := json.NewDecoder(response.Body).Decode(target); err != nil {
			t.Fatalf("GET %s decode body: %v", path, err)
		}
	}
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := postJSON(t, app, "", "/api/auth/register", map[string]any{
		"name":             "Test Runner",
		"email":            email,
		"password":         password,
		"date_of_birth":    "1990-04-15",
		"sex":              "male",
		"height_metres":    1.82,
		"weight_kilograms": 74.5,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected register status 201, got %d (body %s)", response.StatusCode, body)
	}
	return extractAuthCookie(t, response)
}

func loginTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := postJSON(t, app, "", "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected login status 200, got %d (body %s)", response.StatusCode, body)
	}
	return extractAuthCookie(t, response)
}

func extractAuthCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("auth cookie is missing in response")
	return ""
}

func recordSample(t *testing.T, app *fiber.App, authCookie string, duration float64, distance float64, relativeAltitude float64, date string) *http.Response {
	t.Helper()

	return postJSON(t, app, authCookie, "/api/runs/samples", map[string]any{
		"duration":          duration,
		"distance":          distance,
		"relative_altitude": relativeAltitude,
		"date":              date,
	})
}

func mustRecordSample(t *testing.T, app *fiber.App, authCookie string, duration float64, distance float64, relativeAltitude float64, date string) {
	t.Helper()

	response := recordSample(t, app, authCookie, duration, distance, relativeAltitude, date)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected sample status 200, got %d (body %s)", response.StatusCode, body)
	}
}
