package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
)

type Handler interface {
	Handle(ctx context.Context, in Inbound)
}

// Dispatcher runs handlers concurrently across chats and strictly in arrival
// order within a chat. Each chat with pending work has one draining goroutine.
type Dispatcher struct {
	handler Handler

	mu     sync.Mutex
	queues map[int64][]Inbound
	wg     sync.WaitGroup
}

func NewDispatcher(h Handler) *Dispatcher {
	return &Dispatcher{handler: h, queues: make(map[int64][]Inbound)}
}

// Run consumes updates until ctx is done or the channel closes, then waits
// for in-flight handlers. Handlers are not cancelled with ctx.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	hctx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			d.wg.Wait()
			return nil
		case u, ok := <-updates:
			if !ok {
				d.wg.Wait()
				return nil
			}
			d.Dispatch(hctx, u)
		}
	}
}

// Dispatch queues one update. Non-text updates are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, u tgbotapi.Update) {
	in, ok := inboundFromUpdate(u)
	if !ok {
		metrics.UpdatesTotal.WithLabelValues("ignored").Inc()
		return
	}
	chatID := in.Actor.ChatID

	d.mu.Lock()
	q, running := d.queues[chatID]
	d.queues[chatID] = append(q, in)
	d.mu.Unlock()
	if running {
		return
	}
	d.wg.Add(1)
	go d.drain(ctx, chatID)
}

// Wait blocks until every queued update has been handled.
func (d *Dispatcher) Wait() { d.wg.Wait() }

func (d *Dispatcher) drain(ctx context.Context, chatID int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		q := d.queues[chatID]
		if len(q) == 0 {
			delete(d.queues, chatID)
			d.mu.Unlock()
			return
		}
		in := q[0]
		d.queues[chatID] = q[1:]
		d.mu.Unlock()

		d.handle(ctx, in)
	}
}

func (d *Dispatcher) handle(ctx context.Context, in Inbound) {
	ctx = applog.WithUpdate(ctx, in.UpdateID, in.Actor.ChatID, in.Actor.ID)
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerPanicsTotal.Inc()
			applog.Error(ctx, "dispatch.panic", fmt.Errorf("%v", r), map[string]any{"stack": string(debug.Stack())})
		}
	}()
	d.handler.Handle(ctx, in)
}
