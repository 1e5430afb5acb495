package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.now
}

func newTestApp(t *testing.T) (*fiber.App, *Handler, *testClock) {
	t.Helper()

	database := openTestDatabase(t)
	handler, err := NewHandler(database, testSecretKey, time.UTC, TokenSettings{})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	clock := &testClock{now: testNow}
	handler.now = clock.Now

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler, clock
}

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "saheli-api-test.db")
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
	return database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func doRawJSON(t *testing.T, app *fiber.App, method string, path string, token string, raw string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, bytes.NewBufferString(raw))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func decodeResponse[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func readAPIError(t *testing.T, response *http.Response) map[string]string {
	t.Helper()
	return decodeResponse[map[string]string](t, response)
}

type loginResult struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         profileResponse `json:"user"`
}

func registerTestUser(t *testing.T, app *fiber.App, username string) {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/users/register", "", fiber.Map{
		"username": username,
		"password": "StrongPass1",
		"name":     "Test " + username,
	})
	expectStatus(t, response, http.StatusCreated)
}

func loginTestUser(t *testing.T, app *fiber.App, username string) loginResult {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/token", "", fiber.Map{
		"username": username,
		"password": "StrongPass1",
	})
	expectStatus(t, response, http.StatusOK)
	return decodeResponse[loginResult](t, response)
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	registerTestUser(t, app, username)
	return loginTestUser(t, app, username).AccessToken
}
