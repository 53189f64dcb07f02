package bot

import (
	"context"
	"errors"
	"fmt"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/services"
)

func (b *Bot) handleText(ctx context.Context, in Inbound) {
	sess, err := b.loadSession(ctx, in.Actor.ID)
	if err != nil {
		b.fail(ctx, in.Actor, "session.load.fail", err)
		return
	}
	if sess == nil {
		b.onIdle(ctx, in)
		return
	}
	switch sess.State {
	case domain.StateBrandChosen:
		b.onBrandMenu(ctx, in)
	case domain.StateCategoryChosen:
		b.onCategoryMenu(ctx, in, sess)
	case domain.StateProductChosen:
		b.onProductMenu(ctx, in, sess)
	case domain.StateChatting:
		b.onChatting(ctx, in)
	default:
		applog.Error(ctx, "session.state.unknown", fmt.Errorf("state %q", sess.State), nil)
		b.clearSession(ctx, in.Actor.ID)
		b.reply(ctx, in.Actor.ChatID, textMainMenu, mainKeyboard())
	}
}

// onIdle accepts only the main menu labels. Other text is ignored.
func (b *Bot) onIdle(ctx context.Context, in Inbound) {
	a := in.Actor
	switch in.Text {
	case LabelCatalog:
		b.showBrands(ctx, a)
	case LabelOperator:
		b.setState(ctx, a.ID, domain.StateChatting, "", "")
		b.reply(ctx, a.ChatID, textChatStarted, exitChatKeyboard())
	case LabelWarranty:
		b.send(ctx, a.ChatID, textWarranty, SendOptions{ParseMode: ModeMarkdown})
	case LabelReturns:
		b.send(ctx, a.ChatID, textReturns, SendOptions{ParseMode: ModeMarkdown})
	default:
		applog.Debug(ctx, "nav.idle.ignored", nil)
	}
}

// abandon reports an empty or unknown selection and returns the user to Idle.
func (b *Bot) abandon(ctx context.Context, a domain.Actor, text string) {
	b.clearSession(ctx, a.ID)
	b.reply(ctx, a.ChatID, text, mainKeyboard())
}

func (b *Bot) showBrands(ctx context.Context, a domain.Actor) {
	brands, err := b.catalog.BrandNames(ctx)
	if err != nil {
		b.fail(ctx, a, "nav.brands.fail", err)
		return
	}
	if len(brands) == 0 {
		b.abandon(ctx, a, textNoBrands)
		return
	}
	b.setState(ctx, a.ID, domain.StateBrandChosen, "", "")
	b.reply(ctx, a.ChatID, textChooseBrand, menuKeyboard(brands))
}

func (b *Bot) showCategories(ctx context.Context, a domain.Actor, brand string) {
	cats, err := b.catalog.CategoryNames(ctx, brand)
	if err != nil {
		b.fail(ctx, a, "nav.categories.fail", err)
		return
	}
	if len(cats) == 0 {
		b.abandon(ctx, a, fmt.Sprintf(textNoCategories, brand))
		return
	}
	b.setState(ctx, a.ID, domain.StateCategoryChosen, brand, "")
	b.reply(ctx, a.ChatID, fmt.Sprintf(textChooseCategory, brand), menuKeyboard(cats))
}

func (b *Bot) showProducts(ctx context.Context, a domain.Actor, brand, category string) {
	names, err := b.catalog.ProductNames(ctx, brand, category)
	if err != nil {
		b.fail(ctx, a, "nav.products.fail", err)
		return
	}
	if len(names) == 0 {
		b.abandon(ctx, a, fmt.Sprintf(textNoProducts, category))
		return
	}
	b.setState(ctx, a.ID, domain.StateProductChosen, brand, category)
	b.reply(ctx, a.ChatID, fmt.Sprintf(textChooseProduct, category), menuKeyboard(names))
}

func (b *Bot) onBrandMenu(ctx context.Context, in Inbound) {
	a := in.Actor
	brands, err := b.catalog.BrandNames(ctx)
	if err != nil {
		b.fail(ctx, a, "nav.brands.fail", err)
		return
	}
	switch inp := Classify(in.Text, brands); inp.Kind {
	case InputBack:
		b.clearSession(ctx, a.ID)
		b.reply(ctx, a.ChatID, textMainMenu, mainKeyboard())
	case InputSelection:
		b.showCategories(ctx, a, inp.Text)
	default:
		b.abandon(ctx, a, fmt.Sprintf(textNoCategories, inp.Text))
	}
}

func (b *Bot) onCategoryMenu(ctx context.Context, in Inbound, sess *domain.Session) {
	a := in.Actor
	cats, err := b.catalog.CategoryNames(ctx, sess.SelectedBrand)
	if err != nil {
		b.fail(ctx, a, "nav.categories.fail", err)
		return
	}
	switch inp := Classify(in.Text, cats); inp.Kind {
	case InputBack:
		b.showBrands(ctx, a)
	case InputSelection:
		b.showProducts(ctx, a, sess.SelectedBrand, inp.Text)
	default:
		b.abandon(ctx, a, fmt.Sprintf(textNoProducts, inp.Text))
	}
}

func (b *Bot) onProductMenu(ctx context.Context, in Inbound, sess *domain.Session) {
	a := in.Actor
	names, err := b.catalog.ProductNames(ctx, sess.SelectedBrand, sess.SelectedCategory)
	if err != nil {
		b.fail(ctx, a, "nav.products.fail", err)
		return
	}
	inp := Classify(in.Text, names)
	switch inp.Kind {
	case InputBack:
		b.showCategories(ctx, a, sess.SelectedBrand)
		return
	case InputFreeText:
		b.abandon(ctx, a, fmt.Sprintf(textProductNotFound, inp.Text))
		return
	}

	p, err := b.catalog.Product(ctx, sess.SelectedBrand, sess.SelectedCategory, inp.Text)
	if errors.Is(err, services.ErrNotFound) {
		b.abandon(ctx, a, fmt.Sprintf(textProductNotFound, inp.Text))
		return
	}
	if err != nil {
		b.fail(ctx, a, "nav.product.fail", err)
		return
	}
	if err := b.deliver(ctx, a, p); err != nil {
		applog.Error(ctx, "delivery.fail", err, map[string]any{"product": p.Name, "message_ref": p.ChannelMessageRef})
		b.abandon(ctx, a, fmt.Sprintf(textDeliveryFailed, p.Name))
		return
	}
	b.clearSession(ctx, a.ID)
	b.reply(ctx, a.ChatID, textNextAction, mainKeyboard())
}

func (b *Bot) onChatting(ctx context.Context, in Inbound) {
	a := in.Actor
	if in.Text == LabelBack {
		b.clearSession(ctx, a.ID)
		b.reply(ctx, a.ChatID, textChatLeft, mainKeyboard())
		return
	}
	err := b.relay(ctx, a, in.Text)
	b.clearSession(ctx, a.ID)
	if err != nil {
		applog.Error(ctx, "relay.fail", err, nil)
		b.reply(ctx, a.ChatID, textNoOperators, mainKeyboard())
		return
	}
	b.reply(ctx, a.ChatID, textRelayed, mainKeyboard())
}
