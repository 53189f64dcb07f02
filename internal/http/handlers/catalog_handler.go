package handlers

import (
	"shopbot/internal/domain"
	"shopbot/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

type productView struct {
	Name  string     `json:"name"`
	Links []linkView `json:"links"`
}

type linkView struct {
	Market string `json:"market"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

type categoryView struct {
	Name     string        `json:"name"`
	Products []productView `json:"products"`
}

type brandView struct {
	Name       string         `json:"name"`
	Categories []categoryView `json:"categories"`
}

var marketTitles = map[domain.Marketplace]string{
	domain.Ozon:        "Ozon",
	domain.Wildberries: "Wildberries",
	domain.YandexMkt:   "Yandex.Market",
}

func linkViews(p domain.Product) []linkView {
	out := []linkView{}
	for _, l := range p.PurchaseLinks() {
		out = append(out, linkView{Market: string(l.Market), Title: marketTitles[l.Market], URL: l.URL})
	}
	return out
}

// groupEntries folds ordered rows into brand > category > product.
func groupEntries(entries []domain.CatalogEntry) []brandView {
	out := []brandView{}
	for _, e := range entries {
		if len(out) == 0 || out[len(out)-1].Name != e.Brand {
			out = append(out, brandView{Name: e.Brand})
		}
		b := &out[len(out)-1]
		if len(b.Categories) == 0 || b.Categories[len(b.Categories)-1].Name != e.Category {
			b.Categories = append(b.Categories, categoryView{Name: e.Category})
		}
		c := &b.Categories[len(b.Categories)-1]
		c.Products = append(c.Products, productView{Name: e.Name, Links: linkViews(e.Product)})
	}
	return out
}

func (h *CatalogHandler) Page(c *fiber.Ctx) error {
	entries, err := h.Catalog.Entries(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "catalog", fiber.Map{"Title": "Catalog", "Brands": groupEntries(entries)})
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	entries, err := h.Catalog.Entries(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"brands": groupEntries(entries)})
}
