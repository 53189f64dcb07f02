package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"

	"shopbot/internal/domain"
	"shopbot/internal/http/handlers"
)

func seedCatalog(t *testing.T, a *testApp) {
	a.seed(t,
		domain.ProductInput{Brand: "Acme", Category: "Widgets", Name: "Widget-A", ChannelMessageRef: 42, OzonLink: "https://ozon.example/a"},
		domain.ProductInput{Brand: "Acme", Category: "Widgets", Name: "Widget B", ChannelMessageRef: 43, WBLink: "https://wb.example/b", YMLink: "https://ym.example/b"},
		domain.ProductInput{Brand: "Globex", Category: "Gadgets", Name: "Gizmo", ChannelMessageRef: 50},
	)
}

func TestCatalogPage(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	seedCatalog(t, a)

	resp, err := a.app.Test(httptest.NewRequest("GET", "/catalog", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	s := readBody(t, resp.Body)
	for _, want := range []string{"Acme", "Widgets", "Widget-A", "https://ozon.example/a", "Globex", "Gizmo"} {
		if !strings.Contains(s, want) {
			t.Errorf("page misses %q", want)
		}
	}
}

type catalogJSON struct {
	Brands []struct {
		Name       string `json:"name"`
		Categories []struct {
			Name     string `json:"name"`
			Products []struct {
				Name  string `json:"name"`
				Links []struct {
					Market string `json:"market"`
				} `json:"links"`
			} `json:"products"`
		} `json:"categories"`
	} `json:"brands"`
}

func TestCatalogJSONKeepsInsertionOrder(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	seedCatalog(t, a)

	resp, err := a.app.Test(httptest.NewRequest("GET", "/api/v1/catalog", nil))
	if err != nil {
		t.Fatal(err)
	}
	var got catalogJSON
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var tree []string
	for _, b := range got.Brands {
		for _, c := range b.Categories {
			for _, p := range c.Products {
				var markets []string
				for _, l := range p.Links {
					markets = append(markets, l.Market)
				}
				tree = append(tree, b.Name+"/"+c.Name+"/"+p.Name+":"+strings.Join(markets, ","))
			}
		}
	}
	want := []string{"Acme/Widgets/Widget-A:ozon", "Acme/Widgets/Widget B:wb,ym", "Globex/Gadgets/Gizmo:"}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("catalog tree mismatch (-want +got):\n%s", diff)
	}
}

func TestProductDetail(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	seedCatalog(t, a)

	resp, err := a.app.Test(httptest.NewRequest("GET", "/api/v1/products/Acme/Widgets/Widget%20B", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got struct {
		Name  string `json:"name"`
		Links []struct {
			URL string `json:"url"`
		} `json:"links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Widget B" || len(got.Links) != 2 || got.Links[0].URL != "https://wb.example/b" {
		t.Fatalf("unexpected product: %+v", got)
	}

	resp, err = a.app.Test(httptest.NewRequest("GET", "/api/v1/products/Globex/Widgets/Widget-A", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("product from another brand must not resolve, got %d", resp.StatusCode)
	}
}

func TestSearchValidation(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	seedCatalog(t, a)

	resp, err := a.app.Test(httptest.NewRequest("GET", "/api/v1/search?q=%20%20", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for blank query, got %d", resp.StatusCode)
	}

	resp, err = a.app.Test(httptest.NewRequest("GET", "/api/v1/search?q=widget", nil))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 {
		t.Fatalf("expected 2 hits, got %d", got.Count)
	}
}
