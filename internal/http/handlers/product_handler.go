package handlers

import (
	"errors"
	"net/url"

	"shopbot/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// Detail serves GET /api/v1/products/:brand/:category/:name.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	var names [3]string
	for i, key := range []string{"brand", "category", "name"} {
		v, err := url.PathUnescape(c.Params(key))
		if err != nil || v == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + key})
		}
		names[i] = v
	}

	p, err := h.Catalog.Product(c.UserContext(), names[0], names[1], names[2])
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"brand":      names[0],
		"category":   names[1],
		"name":       p.Name,
		"date_added": p.DateAdded,
		"has_file":   p.HasStoredFile(),
		"links":      linkViews(p),
	})
}
