package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodwaste/internal/amqp"
	"foodwaste/internal/core"
	"foodwaste/internal/sheets"
	"foodwaste/internal/store"
)

// MirrorWorker keeps a sheets.EntryMirror in line with the store, driven by
// change events and periodic full reconciles.
type MirrorWorker struct {
	store  store.EntryReader
	mirror sheets.EntryMirror
}

func NewMirrorWorker(reader store.EntryReader, mirror sheets.EntryMirror) *MirrorWorker {
	return &MirrorWorker{
		store:  reader,
		mirror: mirror,
	}
}

// HandleEvent applies one change event. Events carry only the id, so
// created and updated both load the current entry; an entry that vanished
// in the meantime is removed instead.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.EntryEvent) error {
	slog.InfoContext(ctx, "Processing entry event",
		"type", msg.Type,
		"id", msg.ID)

	switch msg.Type {
	case amqp.EntryCreated, amqp.EntryUpdated:
		e, err := w.store.GetEntry(ctx, msg.ID)
		if errors.Is(err, core.ErrNotFound) {
			slog.InfoContext(ctx, "Entry gone before mirroring, removing", "id", msg.ID)
			if err := w.mirror.Remove(ctx, msg.ID); err != nil {
				return fmt.Errorf("remove vanished entry %s: %w", msg.ID, err)
			}
			break
		}
		if err != nil {
			return fmt.Errorf("get entry from storage: %w", err)
		}
		if err := w.mirror.Upsert(ctx, e); err != nil {
			return fmt.Errorf("upsert entry %s: %w", msg.ID, err)
		}
	case amqp.EntryDeleted:
		if err := w.mirror.Remove(ctx, msg.ID); err != nil {
			return fmt.Errorf("remove entry %s: %w", msg.ID, err)
		}
	default:
		return fmt.Errorf("unknown event type %q", msg.Type)
	}

	return w.refreshStatistics(ctx)
}

// Reconcile rewrites the whole mirror from the store. It recovers from
// lost events and from edits made directly in the spreadsheet.
func (w *MirrorWorker) Reconcile(ctx context.Context) error {
	entries, err := w.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	if err := w.mirror.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("replace mirrored entries: %w", err)
	}
	if err := w.mirror.WriteStatistics(ctx, core.Aggregate(entries)); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	slog.InfoContext(ctx, "Mirror reconciled", "entries", len(entries))
	return nil
}

func (w *MirrorWorker) refreshStatistics(ctx context.Context) error {
	entries, err := w.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	if err := w.mirror.WriteStatistics(ctx, core.Aggregate(entries)); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	return nil
}
