package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodwaste/internal/amqp"
	"foodwaste/internal/core"
	"foodwaste/internal/store"
)

// EventPublisher announces entry mutations to downstream consumers.
type EventPublisher interface {
	PublishEntryEvent(ctx context.Context, eventType amqp.EventType, id string) error
	Close() error
}

// EntryService orchestrates entry operations across the store and AMQP
type EntryService struct {
	repo      store.Repository
	publisher EventPublisher
}

// NewEntryService wires a repository and an optional publisher (nil disables
// change events).
func NewEntryService(repo store.Repository, publisher EventPublisher) *EntryService {
	return &EntryService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *EntryService) ListEntries(ctx context.Context) ([]core.WasteEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *EntryService) GetEntry(ctx context.Context, id string) (core.WasteEntry, error) {
	return s.repo.GetEntry(ctx, id)
}

// CreateEntry validates the draft, saves it and publishes entry.created.
func (s *EntryService) CreateEntry(ctx context.Context, d core.EntryDraft) (core.WasteEntry, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}

	e, err := s.repo.CreateEntry(ctx, d)
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("save entry: %w", err)
	}

	slog.InfoContext(ctx, "Waste entry created",
		"id", e.ID,
		"category", e.Category,
		"quantity_kg", e.Quantity.Kilograms())

	s.publish(ctx, amqp.EntryCreated, e.ID)
	return e, nil
}

// UpdateEntry replaces every writable field of an existing entry.
func (s *EntryService) UpdateEntry(ctx context.Context, id string, d core.EntryDraft) (core.WasteEntry, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}

	e, err := s.repo.UpdateEntry(ctx, id, d)
	if err != nil {
		return core.WasteEntry{}, err
	}

	s.publish(ctx, amqp.EntryUpdated, e.ID)
	return e, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Waste entry deleted", "id", id)
	s.publish(ctx, amqp.EntryDeleted, id)
	return nil
}

// Statistics recomputes the snapshot over the full current record set.
func (s *EntryService) Statistics(ctx context.Context) (core.Statistics, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("list entries for statistics: %w", err)
	}
	return core.Aggregate(entries), nil
}

// Ping reports whether the backing store is reachable.
func (s *EntryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish is best effort: the mutation is already durable.
func (s *EntryService) publish(ctx context.Context, t amqp.EventType, id string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping entry event", "type", t, "id", id)
		return
	}
	if err := s.publisher.PublishEntryEvent(ctx, t, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry event",
			"type", t,
			"id", id,
			"error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *EntryService) Close() error {
	var errs []error

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close entry service: %w", err)
	}
	return nil
}
