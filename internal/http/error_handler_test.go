package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"shopbot/internal/http/handlers"
)

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	// Queries fail once the database is gone.
	_ = a.db.Close()

	resp, err := a.app.Test(httptest.NewRequest("GET", "/catalog", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	s := readBody(t, resp.Body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "sql") || strings.Contains(s, "closed") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	resp, err := a.app.Test(httptest.NewRequest("GET", "/nope", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if s := readBody(t, resp.Body); !strings.Contains(s, "Page not found") {
		t.Fatalf("body=%s", s)
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{Health: func() error { return nil }})
	resp, err := a.app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var db *sqlx.DB
	b := newTestApp(t, handlers.AppConfig{Health: func() error { return db.Ping() }})
	db = b.db
	_ = db.Close()
	resp, err = b.app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 with closed db, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	resp, err := a.app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if s := readBody(t, resp.Body); !strings.Contains(s, "shopbot_handler_panics_total") {
		t.Fatalf("shopbot metrics missing")
	}
}
