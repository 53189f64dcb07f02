package bot

import (
	"context"
	"errors"
	"fmt"
	"html"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
	"shopbot/internal/services"
	"shopbot/internal/validate"
)

// usageError carries the reply shown to the operator for malformed arguments.
type usageError struct{ reply string }

func (e *usageError) Error() string { return e.reply }
func (e *usageError) Unwrap() error { return services.ErrFormat }

func badArgs(reply string) error { return &usageError{reply: reply} }

// parseAddProduct reads "[brand] [category] [name] [message_id] [links] [photo_id]".
// Links and photo are optional; pass [] for links to give only a photo.
func parseAddProduct(args string) (domain.ProductInput, error) {
	parts := validate.BracketArgs(args)
	if len(parts) < 4 {
		return domain.ProductInput{}, badArgs(textAddUsage)
	}
	var in domain.ProductInput
	var ok bool
	if in.Brand, ok = validate.Name(parts[0]); !ok {
		return in, badArgs(textAddBadName)
	}
	if in.Category, ok = validate.Name(parts[1]); !ok {
		return in, badArgs(textAddBadName)
	}
	if in.Name, ok = validate.Name(parts[2]); !ok {
		return in, badArgs(textAddBadName)
	}
	if in.ChannelMessageRef, ok = validate.MessageRef(parts[3]); !ok {
		return in, badArgs(textAddBadMessageRef)
	}
	if len(parts) > 4 {
		links := validate.Links(parts[4])
		in.OzonLink = links[domain.Ozon]
		in.WBLink = links[domain.Wildberries]
		in.YMLink = links[domain.YandexMkt]
	}
	if len(parts) > 5 && parts[5] != "" {
		if in.PhotoRef, ok = validate.PhotoRef(parts[5]); !ok {
			return in, badArgs(textAddBadPhotoRef)
		}
	}
	return in, nil
}

func parseDeleteProduct(args string) (brand, category, name string, err error) {
	parts := validate.BracketArgs(args)
	if len(parts) < 3 {
		return "", "", "", badArgs(textDeleteUsage)
	}
	var ok bool
	if brand, ok = validate.Name(parts[0]); !ok {
		return "", "", "", badArgs(textAddBadName)
	}
	if category, ok = validate.Name(parts[1]); !ok {
		return "", "", "", badArgs(textAddBadName)
	}
	if name, ok = validate.Name(parts[2]); !ok {
		return "", "", "", badArgs(textAddBadName)
	}
	return brand, category, name, nil
}

// authorize replies "permission denied" to non-operators.
func (b *Bot) authorize(ctx context.Context, a domain.Actor, command string) bool {
	if b.isOperator(a.ID) {
		return true
	}
	applog.Security(ctx, "admin.denied", map[string]any{"command": command, "user_id": a.ID})
	metrics.AdminCommandsTotal.WithLabelValues(command, "denied").Inc()
	b.reply(ctx, a.ChatID, textPermissionDenied, nil)
	return false
}

func (b *Bot) handleAddProduct(ctx context.Context, in Inbound) {
	a := in.Actor
	if !b.authorize(ctx, a, "add_product") {
		return
	}
	p, err := parseAddProduct(in.Args)
	if err != nil {
		b.replyAdminError(ctx, a, "add_product", err, textAddFailed)
		return
	}
	if err := b.catalog.AddProduct(ctx, p); err != nil {
		b.replyAdminError(ctx, a, "add_product", err, textAddFailed)
		return
	}

	metrics.AdminCommandsTotal.WithLabelValues("add_product", "ok").Inc()
	b.reply(ctx, a.ChatID, fmt.Sprintf(textAddDone, p.Brand, p.Category, p.Name, p.ChannelMessageRef), nil)
	b.audit.Emit(ctx, TagOperatorAction,
		fmt.Sprintf("%s\nadded product <b>%s</b> / <b>%s</b> / <b>%s</b> (message %d)",
			actorHTML(a), html.EscapeString(p.Brand), html.EscapeString(p.Category), html.EscapeString(p.Name), p.ChannelMessageRef),
		map[string]any{"operator_id": a.ID, "brand": p.Brand, "category": p.Category, "product": p.Name})

	if err := b.enrich(ctx, a.ChatID, p.ChannelMessageRef); err != nil {
		applog.Error(ctx, "enrichment.fail", err, map[string]any{"message_ref": p.ChannelMessageRef})
	}
}

// enrich forwards the archive message to chatID to learn its file reference,
// removes the forwarded copy and stores the reference on every product that
// points at the message.
func (b *Bot) enrich(ctx context.Context, chatID int64, messageRef int64) error {
	fwd, err := b.msgr.ForwardFromArchive(ctx, chatID, int(messageRef))
	if err != nil {
		return fmt.Errorf("%w: forward: %w", services.ErrEnrichment, err)
	}
	if err := b.msgr.DeleteMessage(ctx, chatID, fwd.MessageID); err != nil {
		applog.Error(ctx, "enrichment.cleanup.fail", err, map[string]any{"message_id": fwd.MessageID})
	}
	if fwd.Content.FileRef == "" {
		applog.Debug(ctx, "enrichment.no_file", map[string]any{"message_ref": messageRef})
	}
	if err := b.catalog.AttachContent(ctx, messageRef, fwd.Content); err != nil {
		return fmt.Errorf("%w: %w", services.ErrEnrichment, err)
	}
	return nil
}

func (b *Bot) handleDeleteProduct(ctx context.Context, in Inbound) {
	a := in.Actor
	if !b.authorize(ctx, a, "delete_product") {
		return
	}
	brand, category, name, err := parseDeleteProduct(in.Args)
	if err == nil {
		err = b.catalog.DeleteProduct(ctx, brand, category, name)
	}
	if errors.Is(err, services.ErrNotFound) {
		metrics.AdminCommandsTotal.WithLabelValues("delete_product", "not_found").Inc()
		b.reply(ctx, a.ChatID, fmt.Sprintf(textDeleteNotFound, name, category, brand), nil)
		return
	}
	if err != nil {
		b.replyAdminError(ctx, a, "delete_product", err, textDeleteFailed)
		return
	}

	metrics.AdminCommandsTotal.WithLabelValues("delete_product", "ok").Inc()
	b.reply(ctx, a.ChatID, fmt.Sprintf(textDeleteDone, name, category, brand), nil)
	b.audit.Emit(ctx, TagOperatorAction,
		fmt.Sprintf("%s\ndeleted product <b>%s</b> / <b>%s</b> / <b>%s</b>",
			actorHTML(a), html.EscapeString(brand), html.EscapeString(category), html.EscapeString(name)),
		map[string]any{"operator_id": a.ID, "brand": brand, "category": category, "product": name})
}

// replyAdminError shows usage errors verbatim and a generic text otherwise.
func (b *Bot) replyAdminError(ctx context.Context, a domain.Actor, command string, err error, generic string) {
	var ue *usageError
	if errors.As(err, &ue) {
		metrics.AdminCommandsTotal.WithLabelValues(command, "format").Inc()
		b.reply(ctx, a.ChatID, ue.reply, nil)
		return
	}
	if errors.Is(err, services.ErrFormat) {
		metrics.AdminCommandsTotal.WithLabelValues(command, "format").Inc()
		b.reply(ctx, a.ChatID, textAddBadName, nil)
		return
	}
	applog.Error(ctx, "admin."+command+".fail", err, nil)
	metrics.AdminCommandsTotal.WithLabelValues(command, "failed").Inc()
	b.reply(ctx, a.ChatID, generic, nil)
}
