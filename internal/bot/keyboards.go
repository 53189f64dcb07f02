package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shopbot/internal/domain"
)

// StoreLink is a marketplace storefront shown under the welcome message.
type StoreLink struct {
	Title string
	URL   string
}

var marketLabels = map[domain.Marketplace]string{
	domain.Ozon:        "🛒 Buy on Ozon",
	domain.Wildberries: "🛒 Buy on Wildberries",
	domain.YandexMkt:   "🛒 Buy on Yandex.Market",
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(LabelCatalog)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelWarranty),
			tgbotapi.NewKeyboardButton(LabelReturns),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(LabelOperator)),
	)
}

// menuKeyboard puts Back alone on the first row and the options two per row.
func menuKeyboard(options []string) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(LabelBack)),
	}
	for i := 0; i < len(options); i += 2 {
		row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(options[i]))
		if i+1 < len(options) {
			row = append(row, tgbotapi.NewKeyboardButton(options[i+1]))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func exitChatKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(LabelBack)),
	)
}

// buyKeyboard has one URL button per non-empty link, Ozon first. Nil when
// the product has no links.
func buyKeyboard(p domain.Product) *tgbotapi.InlineKeyboardMarkup {
	links := p.PurchaseLinks()
	if len(links) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(links))
	for _, l := range links {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(marketLabels[l.Market], l.URL),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func storefrontKeyboard(links []StoreLink) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range links {
		if l.URL == "" {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(l.Title, l.URL)))
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
