package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shopbot/internal/domain"
)

// Inbound is a text message reduced to what the handlers need.
type Inbound struct {
	UpdateID int
	Actor    domain.Actor
	Text     string
	Command  string // without the slash and @botname; empty for plain text
	Args     string
}

// inboundFromUpdate accepts text messages only. Edits, callbacks and media
// without text are dropped.
func inboundFromUpdate(u tgbotapi.Update) (Inbound, bool) {
	m := u.Message
	if m == nil || m.Chat == nil || m.From == nil || m.Text == "" {
		return Inbound{}, false
	}
	in := Inbound{
		UpdateID: u.UpdateID,
		Actor: domain.Actor{
			ID:       m.From.ID,
			ChatID:   m.Chat.ID,
			Username: m.From.UserName,
		},
		Text: m.Text,
	}
	in.Command, in.Args = parseCommand(m.Text)
	return in, true
}

// parseCommand splits "/cmd@bot args" into "cmd" and "args".
func parseCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	if i := strings.IndexAny(head, "\n\t"); i >= 0 {
		rest = head[i:] + " " + rest
		head = head[:i]
	}
	head, _, _ = strings.Cut(head, "@")
	if head == "" {
		return "", ""
	}
	return strings.ToLower(head), strings.TrimSpace(rest)
}

type InputKind int

const (
	InputFreeText InputKind = iota
	InputBack
	InputSelection
)

// Input is a classified text in a navigation state.
type Input struct {
	Kind InputKind
	Text string
}

// Classify matches text against the Back label first, then against the
// options currently offered. Anything else is free text.
func Classify(text string, options []string) Input {
	if text == LabelBack {
		return Input{Kind: InputBack, Text: text}
	}
	for _, o := range options {
		if o == text {
			return Input{Kind: InputSelection, Text: text}
		}
	}
	return Input{Kind: InputFreeText, Text: text}
}
