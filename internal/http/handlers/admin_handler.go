package handlers

import (
	"bytes"
	"errors"
	"net/url"

	applog "shopbot/internal/log"
	"shopbot/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Catalog *services.CatalogService
}

// POST /api/v1/admin/import with a YAML catalog body.
func (h *AdminHandler) Import(c *fiber.Ctx) error {
	ctx := c.UserContext()
	n, err := h.Catalog.ImportCatalog(ctx, bytes.NewReader(c.Body()))
	if errors.Is(err, services.ErrFormat) {
		applog.Error(ctx, "admin.import.invalid", err, nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		applog.Error(ctx, "admin.import.fail", err, map[string]any{"imported": n})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "import failed", "imported": n})
	}
	applog.Audit(ctx, "admin.import", map[string]any{"imported": n})
	return c.JSON(fiber.Map{"imported": n})
}

// DELETE /api/v1/admin/products/:brand/:category/:name
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var names [3]string
	for i, key := range []string{"brand", "category", "name"} {
		v, err := url.PathUnescape(c.Params(key))
		if err != nil || v == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + key})
		}
		names[i] = v
	}
	err := h.Catalog.DeleteProduct(ctx, names[0], names[1], names[2])
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(ctx, "admin.product.delete.fail", err, nil)
		return err
	}
	applog.Audit(ctx, "admin.product.delete", map[string]any{"brand": names[0], "category": names[1], "product": names[2]})
	return c.SendStatus(fiber.StatusNoContent)
}
