package bot

import (
	"context"
	"errors"
	"fmt"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/metrics"
	"shopbot/internal/services"
)

// deliver sends the optional preview photo, then the product's archive
// message with buy buttons. When the copy fails and enrichment stored a file
// reference, the file is sent directly instead.
func (b *Bot) deliver(ctx context.Context, a domain.Actor, p domain.Product) error {
	if photoID, ok := p.PhotoMessageID(); ok {
		if err := b.msgr.CopyFromArchive(ctx, a.ChatID, photoID, nil); err != nil {
			applog.Error(ctx, "delivery.photo.fail", err, map[string]any{"photo_ref": p.PhotoRef})
		}
	}

	markup := buyKeyboard(p)
	err := b.msgr.CopyFromArchive(ctx, a.ChatID, int(p.ChannelMessageRef), markup)
	if err == nil {
		metrics.DeliveriesTotal.WithLabelValues("ok").Inc()
		return nil
	}
	if p.HasStoredFile() {
		stored := domain.ArchivedContent{FileRef: p.StoredFileRef, FileType: p.StoredFileType, Caption: p.Caption}
		ferr := b.msgr.SendStoredFile(ctx, a.ChatID, stored, markup)
		if ferr == nil {
			applog.Info(ctx, "delivery.fallback", map[string]any{"product": p.Name, "copy_err": err.Error()})
			metrics.DeliveriesTotal.WithLabelValues("fallback").Inc()
			return nil
		}
		err = errors.Join(err, ferr)
	}
	metrics.DeliveriesTotal.WithLabelValues("failed").Inc()
	return fmt.Errorf("%w: %w", services.ErrDelivery, err)
}
