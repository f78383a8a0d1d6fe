package store

import (
	"context"

	"foodwaste/internal/core"
)

// Ports for the record store. Every backend returns core.ErrNotFound
// (possibly wrapped) when an id has no matching record.
type (
	EntryReader interface {
		// ListEntries returns the full current set, newest first.
		ListEntries(ctx context.Context) ([]core.WasteEntry, error)
		GetEntry(ctx context.Context, id string) (core.WasteEntry, error)
	}

	EntryWriter interface {
		// CreateEntry assigns id and creation time and persists the draft.
		CreateEntry(ctx context.Context, d core.EntryDraft) (core.WasteEntry, error)
		// UpdateEntry replaces every writable field of the entry.
		UpdateEntry(ctx context.Context, id string, d core.EntryDraft) (core.WasteEntry, error)
	}

	EntryDeleter interface {
		DeleteEntry(ctx context.Context, id string) error
	}

	// Repository is the full record store surface.
	Repository interface {
		EntryReader
		EntryWriter
		EntryDeleter
		Ping(ctx context.Context) error
		Close() error
	}
)
