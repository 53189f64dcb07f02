package handlers

import (
	"strings"

	applog "shopbot/internal/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminToken guards the admin API with a bearer token checked against
// its bcrypt hash. An empty hash disables the API entirely.
func RequireAdminToken(hash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hash == "" {
			return c.SendStatus(fiber.StatusNotFound)
		}
		got, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(got)) != nil {
			applog.Security(c.UserContext(), "access.denied.admin", map[string]any{"ip": c.IP(), "path": c.Path()})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return c.Next()
	}
}
