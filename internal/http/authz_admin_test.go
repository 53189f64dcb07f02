package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"shopbot/internal/http/handlers"
)

const importYAML = `
brands:
  - name: Acme
    categories:
      - name: Widgets
        products:
          - name: Widget-A
            message_ref: 42
            links: {ozon: "https://ozon.example/a"}
          - name: Widget-B
            message_ref: 43
            photo_ref: "44"
`

func doAdmin(t *testing.T, a *testApp, method, path, token, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestAdminAPIRequiresToken(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	for _, tok := range []string{"", "wrong"} {
		if code := doAdmin(t, a, "POST", "/api/v1/admin/import", tok, importYAML); code != fiber.StatusForbidden {
			t.Fatalf("token %q: expected 403, got %d", tok, code)
		}
	}
	n, err := a.catalog.ProductCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("denied import wrote %d products", n)
	}
}

func TestAdminImportAndDelete(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})

	req := httptest.NewRequest("POST", "/api/v1/admin/import", strings.NewReader(importYAML))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := a.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Imported int `json:"imported"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK || got.Imported != 2 {
		t.Fatalf("import: status %d, imported %d", resp.StatusCode, got.Imported)
	}

	p, err := a.catalog.Product(context.Background(), "Acme", "Widgets", "Widget-B")
	if err != nil {
		t.Fatal(err)
	}
	if p.PhotoRef != "44" || p.ChannelMessageRef != 43 {
		t.Fatalf("unexpected product: %+v", p)
	}

	if code := doAdmin(t, a, "DELETE", "/api/v1/admin/products/Acme/Widgets/Widget-A", adminToken, ""); code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := doAdmin(t, a, "DELETE", "/api/v1/admin/products/Acme/Widgets/Widget-A", adminToken, ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", code)
	}
}

func TestAdminImportRejectsBadYAML(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	if code := doAdmin(t, a, "POST", "/api/v1/admin/import", adminToken, "brands: [oops"); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
