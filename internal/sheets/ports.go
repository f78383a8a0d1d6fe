package sheets

import (
	"context"

	"foodwaste/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryMirror keeps a read-only copy of the entries and the latest
	// statistics outside the store. Implementations must be idempotent:
	// Upsert of an existing id rewrites it; Remove of an unknown id is a no-op.
	EntryMirror interface {
		Upsert(ctx context.Context, e core.WasteEntry) error
		Remove(ctx context.Context, id string) error
		ReplaceAll(ctx context.Context, entries []core.WasteEntry) error
		WriteStatistics(ctx context.Context, s core.Statistics) error
	}

	// MirrorReader lists what a mirror currently holds.
	MirrorReader interface {
		MirroredEntries(ctx context.Context) ([]core.WasteEntry, error)
	}
)
