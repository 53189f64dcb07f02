package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
)

type TelegramConfig struct {
	Token          string
	FilesChannelID int64
	SendRate       float64 // messages per second across all chats
}

// Telegram is the Bot API implementation of Messenger. It also owns update
// intake for polling and webhook modes.
type Telegram struct {
	api       *tgbotapi.BotAPI
	archiveID int64
	limiter   *rate.Limiter
}

func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	burst := int(cfg.SendRate)
	if burst < 1 {
		burst = 1
	}
	return &Telegram{
		api:       api,
		archiveID: cfg.FilesChannelID,
		limiter:   rate.NewLimiter(rate.Limit(cfg.SendRate), burst),
	}, nil
}

func (t *Telegram) Username() string { return t.api.Self.UserName }

func (t *Telegram) wait(ctx context.Context, op string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		metrics.TransportErrorsTotal.WithLabelValues(op).Inc()
		return err
	}
	return nil
}

func (t *Telegram) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	metrics.TransportErrorsTotal.WithLabelValues(op).Inc()
	return fmt.Errorf("%s: %w", op, err)
}

func (t *Telegram) SendText(ctx context.Context, chatID int64, text string, opts SendOptions) error {
	if err := t.wait(ctx, "send_text"); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = opts.ParseMode
	msg.DisableWebPagePreview = opts.DisablePreview
	if opts.Markup != nil {
		msg.ReplyMarkup = opts.Markup
	}
	_, err := t.api.Send(msg)
	return t.fail("send_text", err)
}

func (t *Telegram) CopyFromArchive(ctx context.Context, chatID int64, messageID int, markup *tgbotapi.InlineKeyboardMarkup) error {
	if err := t.wait(ctx, "copy"); err != nil {
		return err
	}
	cfg := tgbotapi.NewCopyMessage(chatID, t.archiveID, messageID)
	if markup != nil {
		cfg.ReplyMarkup = *markup
	}
	_, err := t.api.CopyMessage(cfg)
	return t.fail("copy", err)
}

func (t *Telegram) ForwardFromArchive(ctx context.Context, chatID int64, messageID int) (Forwarded, error) {
	if err := t.wait(ctx, "forward"); err != nil {
		return Forwarded{}, err
	}
	m, err := t.api.Send(tgbotapi.NewForward(chatID, t.archiveID, messageID))
	if err != nil {
		return Forwarded{}, t.fail("forward", err)
	}
	return Forwarded{MessageID: m.MessageID, Content: archivedContent(m)}, nil
}

// archivedContent pulls the reusable file reference out of a forwarded message.
// Photos keep the largest size.
func archivedContent(m tgbotapi.Message) domain.ArchivedContent {
	c := domain.ArchivedContent{Caption: m.Caption}
	switch {
	case m.Document != nil:
		c.FileRef = m.Document.FileID
		c.FileType = domain.FileTypeDocument
	case len(m.Photo) > 0:
		c.FileRef = m.Photo[len(m.Photo)-1].FileID
		c.FileType = domain.FileTypePhoto
	}
	return c
}

func (t *Telegram) SendStoredFile(ctx context.Context, chatID int64, content domain.ArchivedContent, markup *tgbotapi.InlineKeyboardMarkup) error {
	if err := t.wait(ctx, "send_file"); err != nil {
		return err
	}
	var c tgbotapi.Chattable
	switch content.FileType {
	case domain.FileTypeDocument:
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(content.FileRef))
		doc.Caption = content.Caption
		if markup != nil {
			doc.ReplyMarkup = *markup
		}
		c = doc
	case domain.FileTypePhoto:
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(content.FileRef))
		photo.Caption = content.Caption
		if markup != nil {
			photo.ReplyMarkup = *markup
		}
		c = photo
	default:
		return fmt.Errorf("send_file: unsupported file type %q", content.FileType)
	}
	_, err := t.api.Send(c)
	return t.fail("send_file", err)
}

func (t *Telegram) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := t.wait(ctx, "delete"); err != nil {
		return err
	}
	_, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return t.fail("delete", err)
}

// Poll drops any webhook and pending updates, then long-polls. The channel
// closes after StopPolling.
func (t *Telegram) Poll(ctx context.Context) (tgbotapi.UpdatesChannel, error) {
	if _, err := t.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return nil, t.fail("delete_webhook", err)
	}
	applog.Info(ctx, "telegram.polling.start", map[string]any{"bot": t.api.Self.UserName})
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return t.api.GetUpdatesChan(u), nil
}

func (t *Telegram) StopPolling() {
	t.api.StopReceivingUpdates()
}

// SetWebhook registers url with a secret token that Telegram echoes back in
// the X-Telegram-Bot-Api-Secret-Token header.
func (t *Telegram) SetWebhook(ctx context.Context, url, secret string) error {
	resp, err := t.api.MakeRequest("setWebhook", tgbotapi.Params{
		"url":                  url,
		"secret_token":         secret,
		"drop_pending_updates": strconv.FormatBool(true),
	})
	if err != nil {
		return t.fail("set_webhook", err)
	}
	if !resp.Ok {
		return t.fail("set_webhook", errors.New(resp.Description))
	}
	applog.Info(ctx, "telegram.webhook.set", map[string]any{"url": url})
	return nil
}
