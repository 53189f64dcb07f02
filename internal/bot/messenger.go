package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shopbot/internal/domain"
)

const (
	ModeHTML     = tgbotapi.ModeHTML
	ModeMarkdown = tgbotapi.ModeMarkdown
)

type SendOptions struct {
	ParseMode      string
	Markup         any // tgbotapi reply or inline keyboard value
	DisablePreview bool
}

// Forwarded is a transient copy of an archive message and what it carries.
type Forwarded struct {
	MessageID int
	Content   domain.ArchivedContent
}

// Messenger is the messaging transport the bot talks through. The archive
// channel is fixed by the implementation.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, opts SendOptions) error
	CopyFromArchive(ctx context.Context, chatID int64, messageID int, markup *tgbotapi.InlineKeyboardMarkup) error
	ForwardFromArchive(ctx context.Context, chatID int64, messageID int) (Forwarded, error)
	SendStoredFile(ctx context.Context, chatID int64, content domain.ArchivedContent, markup *tgbotapi.InlineKeyboardMarkup) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
