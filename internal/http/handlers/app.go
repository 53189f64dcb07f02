package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

type AppConfig struct {
	PageRateLimit  int    // requests per minute per IP on public pages
	AdminTokenHash string // bcrypt; empty disables /api/v1/admin
	Health         func() error
}

// NewApp builds the HTTP surface: webhook intake, health, metrics and the
// public catalog.
func NewApp(cfg AppConfig, d *Deps) *fiber.App {
	views, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
		BodyLimit:             1 << 20, // 1 MiB
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		c.SetUserContext(applog.WithRequest(c.UserContext(), rid, c.Method(), c.Path()))
		return c.Next()
	})

	if d.WebhookHandler != nil {
		app.Post("/telegram/webhook", d.WebhookHandler.Receive)
	}
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if cfg.Health != nil {
			if err := cfg.Health(); err != nil {
				applog.Error(c.UserContext(), "health.fail", err, nil)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
			}
		}
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	limit := cfg.PageRateLimit
	if limit <= 0 {
		limit = 60
	}
	pages := limiter.New(limiter.Config{
		Max:        limit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c.UserContext(), "rate.catalog.hit", map[string]any{"ip": c.IP()})
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	app.Get("/catalog", pages, helmet.New(), d.CatalogHandler.Page)
	// The limiter is attached per route so the admin group below is not counted.
	api := app.Group("/api/v1")
	api.Get("/catalog", pages, d.CatalogHandler.List)
	api.Get("/products/:brand/:category/:name", pages, d.ProductHandler.Detail)
	api.Get("/search", pages, d.SearchHandler.Search)

	admin := api.Group("/admin", RequireAdminToken(cfg.AdminTokenHash))
	admin.Post("/import", d.AdminHandler.Import)
	admin.Delete("/products/:brand/:category/:name", d.AdminHandler.DeleteProduct)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Title": "Not found", "Message": "Page not found"})
	})
	return app
}

// errorHandler logs the cause and shows a friendly page without internals.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c.UserContext(), "server.error", err, map[string]any{"status": code})
	msg := "Something went wrong. Please try again."
	if code == fiber.StatusNotFound {
		msg = "Page not found"
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Title": "Error", "Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
