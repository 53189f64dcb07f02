package handlers

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shopbot/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	ProductHandler *ProductHandler
	SearchHandler  *SearchHandler
	AdminHandler   *AdminHandler
	WebhookHandler *WebhookHandler // nil in polling mode
}

// NewDeps wires the handlers. updates may be nil when no webhook is served.
func NewDeps(catalog *services.CatalogService, updates chan<- tgbotapi.Update, webhookSecret string) *Deps {
	d := &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalog},
		ProductHandler: &ProductHandler{Catalog: catalog},
		SearchHandler:  &SearchHandler{Catalog: catalog},
		AdminHandler:   &AdminHandler{Catalog: catalog},
	}
	if updates != nil {
		d.WebhookHandler = &WebhookHandler{Secret: webhookSecret, Updates: updates, Timeout: 5 * time.Second}
	}
	return d
}
