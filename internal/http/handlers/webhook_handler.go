package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"

	applog "shopbot/internal/log"
)

const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler feeds updates pushed by Telegram into the dispatcher channel.
type WebhookHandler struct {
	Secret  string
	Updates chan<- tgbotapi.Update
	Timeout time.Duration
}

func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if subtle.ConstantTimeCompare([]byte(c.Get(SecretHeader)), []byte(h.Secret)) != 1 {
		applog.Security(ctx, "webhook.secret.mismatch", map[string]any{"ip": c.IP()})
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var u tgbotapi.Update
	if err := json.Unmarshal(c.Body(), &u); err != nil {
		applog.Error(ctx, "webhook.decode.fail", err, nil)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	timer := time.NewTimer(h.Timeout)
	defer timer.Stop()
	select {
	case h.Updates <- u:
		return c.SendStatus(fiber.StatusOK)
	case <-timer.C:
		applog.Error(ctx, "webhook.enqueue.timeout", nil, map[string]any{"update_id": u.UpdateID})
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}
}
