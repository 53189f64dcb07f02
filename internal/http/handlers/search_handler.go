package handlers

import (
	"strings"

	"shopbot/internal/log"
	"shopbot/internal/services"
	"shopbot/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

type searchHit struct {
	Brand    string     `json:"brand"`
	Category string     `json:"category"`
	Name     string     `json:"name"`
	Links    []linkView `json:"links"`
}

// Search serves GET /api/v1/search?q=, a case-insensitive match on product names.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	q, ok := validate.Query(rawQ)
	if !ok {
		log.Security(c.UserContext(), "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter 1 to 64 characters"})
	}
	entries, err := h.Catalog.Entries(c.UserContext())
	if err != nil {
		return err
	}
	q = strings.ToLower(q)
	hits := []searchHit{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			hits = append(hits, searchHit{Brand: e.Brand, Category: e.Category, Name: e.Name, Links: linkViews(e.Product)})
		}
	}
	return c.JSON(fiber.Map{"q": q, "count": len(hits), "products": hits})
}
