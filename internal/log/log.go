package log

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

type Config struct {
	Debug   bool
	Pretty  bool
	LogFile string
}

// Init configures the global logger. The returned closer releases the log file, if any.
func Init(cfg Config) (io.Closer, error) {
	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.NewConsoleWriter()
	}

	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return closer, err
		}
		out = io.MultiWriter(out, f)
		closer = f
	}

	SetOutput(out)
	if cfg.Debug {
		zlog.Logger = zlog.Logger.Level(zerolog.DebugLevel)
	} else {
		zlog.Logger = zlog.Logger.Level(zerolog.InfoLevel)
	}
	return closer, nil
}

// SetOutput swaps the global sink. Tests use it to capture entries.
func SetOutput(w io.Writer) {
	zlog.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// WithUpdate returns a context whose logger carries the update identity.
func WithUpdate(ctx context.Context, updateID int, chatID, userID int64) context.Context {
	l := zlog.Logger.With().
		Int("update_id", updateID).
		Int64("chat_id", chatID).
		Int64("user_id", userID).
		Logger()
	return l.WithContext(ctx)
}

// WithRequest returns a context whose logger carries the HTTP request identity.
func WithRequest(ctx context.Context, requestID, method, path string) context.Context {
	l := zlog.Logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()
	return l.WithContext(ctx)
}

func from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &zlog.Logger
}

func write(ev *zerolog.Event, kind, action string, err error, fields map[string]any) {
	if kind != "" {
		ev = ev.Str("kind", kind)
	}
	ev = ev.Str("action", action)
	if err != nil {
		ev = ev.Str("err", err.Error())
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Debug(ctx context.Context, action string, fields map[string]any) {
	write(from(ctx).Debug(), "", action, nil, fields)
}

func Info(ctx context.Context, action string, fields map[string]any) {
	write(from(ctx).Info(), "", action, nil, fields)
}

// Audit records an operator- or user-visible action with a unique event id.
func Audit(ctx context.Context, action string, fields map[string]any) {
	write(from(ctx).Info().Str("event_id", uuid.NewString()), "audit", action, nil, fields)
}

func Security(ctx context.Context, action string, fields map[string]any) {
	write(from(ctx).Warn(), "security", action, nil, fields)
}

func Error(ctx context.Context, action string, err error, fields map[string]any) {
	write(from(ctx).Error(), "", action, err, fields)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
