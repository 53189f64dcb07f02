package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
	"shopbot/internal/services"
	"shopbot/internal/validate"
)

// relay sends text to every operator in order. It succeeds when at least one
// operator received it.
func (b *Bot) relay(ctx context.Context, a domain.Actor, text string) error {
	b.audit.Emit(ctx, TagUserAction, actorHTML(a)+"\nwrote to operators:\n"+html.EscapeString(text), actorFields(a))

	body := fmt.Sprintf(textOperatorMsg, html.EscapeString(a.DisplayName()), a.ID, html.EscapeString(text), a.ID)
	delivered := 0
	for _, op := range b.operators {
		if err := b.msgr.SendText(ctx, op, body, SendOptions{ParseMode: ModeHTML}); err != nil {
			applog.Error(ctx, "relay.operator.fail", err, map[string]any{"operator_id": op})
			continue
		}
		delivered++
	}
	if delivered == 0 {
		metrics.BroadcastsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("%w: %d operators configured", services.ErrBroadcast, len(b.operators))
	}
	metrics.BroadcastsTotal.WithLabelValues("ok").Inc()
	applog.Info(ctx, "relay.sent", map[string]any{"delivered": delivered, "operators": len(b.operators)})
	return nil
}

// handleReply is "/reply <user_id> <text>". Non-operators are ignored.
func (b *Bot) handleReply(ctx context.Context, in Inbound) {
	a := in.Actor
	if !b.isOperator(a.ID) {
		applog.Security(ctx, "reply.denied", actorFields(a))
		metrics.AdminCommandsTotal.WithLabelValues("reply", "denied").Inc()
		return
	}

	rawID, body, ok := splitReplyArgs(in.Args)
	if !ok {
		metrics.AdminCommandsTotal.WithLabelValues("reply", "format").Inc()
		b.reply(ctx, a.ChatID, textReplyUsage, nil)
		return
	}
	userID, ok := validate.UserID(rawID)
	if !ok {
		metrics.AdminCommandsTotal.WithLabelValues("reply", "format").Inc()
		b.reply(ctx, a.ChatID, textReplyBadUser, nil)
		return
	}

	if err := b.msgr.SendText(ctx, userID, textOperatorHead+body, SendOptions{}); err != nil {
		applog.Error(ctx, "reply.send.fail", err, map[string]any{"target_id": userID})
		metrics.AdminCommandsTotal.WithLabelValues("reply", "failed").Inc()
		b.reply(ctx, a.ChatID, fmt.Sprintf(textReplyFailed, err.Error()), nil)
		return
	}
	metrics.AdminCommandsTotal.WithLabelValues("reply", "ok").Inc()
	b.audit.Emit(ctx, TagOperatorAction,
		fmt.Sprintf("%s\nreplied to <code>%d</code>:\n%s", actorHTML(a), userID, html.EscapeString(body)),
		map[string]any{"operator_id": a.ID, "target_id": userID})
	b.reply(ctx, a.ChatID, fmt.Sprintf(textReplySent, userID), nil)
}

// splitReplyArgs separates the target id from the body, keeping the body's
// inner line breaks.
func splitReplyArgs(args string) (string, string, bool) {
	args = strings.TrimSpace(args)
	i := strings.IndexFunc(args, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	body := strings.TrimSpace(args[i:])
	if body == "" {
		return "", "", false
	}
	return args[:i], body, true
}
