package bot

import (
	"context"
	"errors"
	"time"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
	"shopbot/internal/session"
)

// Catalog is the read/write catalog surface the handlers use.
type Catalog interface {
	BrandNames(ctx context.Context) ([]string, error)
	CategoryNames(ctx context.Context, brand string) ([]string, error)
	ProductNames(ctx context.Context, brand, category string) ([]string, error)
	Product(ctx context.Context, brand, category, name string) (domain.Product, error)
	AddProduct(ctx context.Context, in domain.ProductInput) error
	DeleteProduct(ctx context.Context, brand, category, name string) error
	AttachContent(ctx context.Context, messageRef int64, c domain.ArchivedContent) error
}

type Deps struct {
	Messenger    Messenger
	Catalog      Catalog
	Sessions     session.Store
	Operators    []int64 // broadcast order
	LogChannelID int64   // 0 disables the audit channel
	Storefronts  []StoreLink
}

type Bot struct {
	msgr        Messenger
	catalog     Catalog
	sessions    session.Store
	operators   []int64
	storefronts []StoreLink
	audit       *Auditor

	now func() time.Time
}

func New(d Deps) *Bot {
	return &Bot{
		msgr:        d.Messenger,
		catalog:     d.Catalog,
		sessions:    d.Sessions,
		operators:   d.Operators,
		storefronts: d.Storefronts,
		audit:       NewAuditor(d.Messenger, d.LogChannelID),
		now:         time.Now,
	}
}

func (b *Bot) Audit() *Auditor { return b.audit }

func (b *Bot) isOperator(id int64) bool {
	for _, op := range b.operators {
		if op == id {
			return true
		}
	}
	return false
}

// Handle processes one inbound message. Commands are honoured in any state;
// plain text is routed by the sender's session.
func (b *Bot) Handle(ctx context.Context, in Inbound) {
	if in.Command != "" {
		metrics.UpdatesTotal.WithLabelValues("command").Inc()
		switch in.Command {
		case "start":
			b.handleStart(ctx, in)
			return
		case "add_product":
			b.handleAddProduct(ctx, in)
			return
		case "delete_product":
			b.handleDeleteProduct(ctx, in)
			return
		case "reply":
			b.handleReply(ctx, in)
			return
		}
		applog.Debug(ctx, "bot.command.unknown", map[string]any{"command": in.Command})
	} else {
		metrics.UpdatesTotal.WithLabelValues("text").Inc()
	}
	b.handleText(ctx, in)
}

// loadSession returns nil for Idle.
func (b *Bot) loadSession(ctx context.Context, userID int64) (*domain.Session, error) {
	s, err := b.sessions.Load(ctx, userID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	return s, err
}

func (b *Bot) setState(ctx context.Context, userID int64, state domain.State, brand, category string) {
	s := domain.NewSession(userID, state, b.now())
	s.SelectedBrand = brand
	s.SelectedCategory = category
	if err := b.sessions.Save(ctx, s); err != nil {
		applog.Error(ctx, "session.save.fail", err, map[string]any{"state": string(state)})
	}
}

func (b *Bot) clearSession(ctx context.Context, userID int64) {
	if err := b.sessions.Delete(ctx, userID); err != nil {
		applog.Error(ctx, "session.delete.fail", err, nil)
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string, markup any) {
	b.send(ctx, chatID, text, SendOptions{Markup: markup})
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, opts SendOptions) {
	if err := b.msgr.SendText(ctx, chatID, text, opts); err != nil {
		applog.Error(ctx, "bot.send.fail", err, map[string]any{"chat_id": chatID})
	}
}

// fail is the catch-all for unexpected errors: log, reset, show the main menu.
func (b *Bot) fail(ctx context.Context, a domain.Actor, action string, err error) {
	applog.Error(ctx, action, err, nil)
	b.clearSession(ctx, a.ID)
	b.reply(ctx, a.ChatID, textSomethingWrong, mainKeyboard())
}

func (b *Bot) handleStart(ctx context.Context, in Inbound) {
	a := in.Actor
	b.clearSession(ctx, a.ID)
	b.audit.Emit(ctx, TagUserAction, actorHTML(a)+"\nstarted the bot", actorFields(a))

	welcome := SendOptions{}
	if kb := storefrontKeyboard(b.storefronts); kb != nil {
		welcome.Markup = *kb
	}
	b.send(ctx, a.ChatID, textWelcome, welcome)
	b.reply(ctx, a.ChatID, textChooseAction, mainKeyboard())
}
