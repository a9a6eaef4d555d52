package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlvilasoler/hashrate/database"
	"github.com/jlvilasoler/hashrate/middlewares"
	"github.com/jlvilasoler/hashrate/models"
	"github.com/jlvilasoler/hashrate/routes"

	"github.com/gofiber/fiber/v2"
)

// setupApp wires a fresh app against a throwaway SQLite file and an empty
// history file, mirroring the wiring in main.go minus CORS/rate limiting.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db

	t.Setenv("HISTORY_PATH", filepath.Join(t.TempDir(), "facturas_hrs.json"))

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func dbCount(out *int64) error {
	return database.DB.Model(&models.Invoice{}).Count(out).Error
}

type errorResponse struct {
	Error struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}
