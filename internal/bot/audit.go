package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
)

const (
	TagStartup        = "STARTUP"
	TagUserAction     = "USER_ACTION"
	TagOperatorAction = "OPERATOR_ACTION"
	TagInfo           = "INFO"
)

// Auditor mirrors audit events to the structured log and, when configured,
// to the log channel. Channel failures never reach the caller.
type Auditor struct {
	msgr      Messenger
	channelID int64
	now       func() time.Time
}

func NewAuditor(m Messenger, channelID int64) *Auditor {
	return &Auditor{msgr: m, channelID: channelID, now: time.Now}
}

// Emit records event. text is HTML; user-supplied parts must be escaped by the caller.
func (a *Auditor) Emit(ctx context.Context, tag, text string, fields map[string]any) {
	f := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		f[k] = v
	}
	f["tag"] = tag
	f["text"] = text
	applog.Audit(ctx, "audit."+strings.ToLower(tag), f)

	if a.channelID == 0 {
		return
	}
	body := fmt.Sprintf("📋 #%s | %s\n\n%s", tag, a.now().Format("2006-01-02 15:04:05"), text)
	opts := SendOptions{ParseMode: ModeHTML, DisablePreview: true}
	if err := a.msgr.SendText(ctx, a.channelID, body, opts); err != nil {
		applog.Error(ctx, "audit.channel.fail", err, map[string]any{"tag": tag})
	}
}

func actorFields(a domain.Actor) map[string]any {
	return map[string]any{"user_id": a.ID, "username": a.Username}
}

func actorHTML(a domain.Actor) string {
	return fmt.Sprintf("👤 <b>%s</b> (<code>%d</code>)", html.EscapeString(a.DisplayName()), a.ID)
}
