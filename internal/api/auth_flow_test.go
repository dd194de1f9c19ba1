package api

import (
	"net/http"
	"testing"
)

func TestRegisterLoginProfileFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "runner@example.com", "StrongPass1")

	authCookie := loginTestUser(t, app, "runner@example.com", "StrongPass1")

	profile := struct {
		Email     string `json:"email"`
		Name      string `json:"name"`
		Sex       string `json:"sex"`
		OpenRunID *uint  `json:"open_run_id"`
	}{}
	getJSON(t, app, authCookie, "/api/profile", http.StatusOK, &profile)

	if profile.Email != "runner@example.com" {
		t.Fatalf("profile email = %q, want runner@example.com", profile.Email)
	}
	if profile.OpenRunID != nil {
		t.Fatalf("fresh account open_run_id = %v, want null", *profile.OpenRunID)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "dup@example.com", "StrongPass1")

	response := postJSON(t, app, "", "/api/auth/register", map[string]any{
		"name":             "Second",
		"email":            "DUP@example.com",
		"password":         "StrongPass1",
		"date_of_birth":    "1992-01-01",
		"sex":              "female",
		"height_metres":    1.65,
		"weight_kilograms": 58.0,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", response.StatusCode)
	}
	body := struct {
		Error string `json:"error"`
	}{}
	decodeJSONBody(t, response, &body)
	if body.Error != "user already exists" {
		t.Fatalf("duplicate register error = %q, want %q", body.Error, "user already exists")
	}
}

func TestLoginFailuresAreDistinguished(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "known@example.com", "StrongPass1")

	unknown := postJSON(t, app, "", "/api/auth/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "StrongPass1",
	})
	if unknown.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown user login status = %d, want 401", unknown.StatusCode)
	}
	unknownBody := struct {
		Error string `json:"error"`
	}{}
	decodeJSONBody(t, unknown, &unknownBody)
	if unknownBody.Error != "user doesn't exist" {
		t.Fatalf("unknown user error = %q, want %q", unknownBody.Error, "user doesn't exist")
	}

	wrongPassword := postJSON(t, app, "", "/api/auth/login", map[string]any{
		"email":    "known@example.com",
		"password": "WrongPass1",
	})
	if wrongPassword.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password login status = %d, want 401", wrongPassword.StatusCode)
	}
	wrongBody := struct {
		Error string `json:"error"`
	}{}
	decodeJSONBody(t, wrongPassword, &wrongBody)
	if wrongBody.Error != "incorrect password" {
		t.Fatalf("wrong password error = %q, want %q", wrongBody.Error, "incorrect password")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	for _, path := range []string{"/api/runs", "/api/stats/overview", "/api/profile", "/api/export/summary"} {
		getJSON(t, app, "", path, http.StatusUnauthorized, nil)
	}

	response := recordSample(t, app, "", 0, 0, 0, "01-06-2024")
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated sample status = %d, want 401", response.StatusCode)
	}
}

func TestChangePasswordFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "rotate@example.com", "StrongPass1")

	wrong := postJSON(t, app, authCookie, "/api/settings/change-password", map[string]any{
		"current_password": "NotThePass1",
		"new_password":     "FreshPass2",
	})
	defer wrong.Body.Close()
	if wrong.StatusCode != http.StatusUnauthorized {
		t.Fatalf("change with wrong current status = %d, want 401", wrong.StatusCode)
	}

	ok := postJSON(t, app, authCookie, "/api/settings/change-password", map[string]any{
		"current_password": "StrongPass1",
		"new_password":     "FreshPass2",
	})
	defer ok.Body.Close()
	if ok.StatusCode != http.StatusOK {
		t.Fatalf("change password status = %d, want 200", ok.StatusCode)
	}

	loginTestUser(t, app, "rotate@example.com", "FreshPass2")
}
