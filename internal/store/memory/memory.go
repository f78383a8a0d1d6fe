package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"foodwaste/internal/core"
	"foodwaste/internal/store"
)

var _ store.Repository = (*Store)(nil)

// Store keeps entries in insertion order behind a mutex.
type Store struct {
	mu    sync.Mutex
	items []core.WasteEntry

	now   func() time.Time
	newID func() string
}

func New() *Store {
	return &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// NewWithClock is New with a fixed time source, for deterministic tests.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

// CreateEntry stores the entry with a fresh id.
func (s *Store) CreateEntry(_ context.Context, d core.EntryDraft) (core.WasteEntry, error) {
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := core.WasteEntry{
		ID:        s.newID(),
		UserID:    core.DefaultUserID,
		CreatedAt: s.now(),
	}.Apply(d)
	s.items = append(s.items, e)
	return e, nil
}

// ListEntries returns a copy, newest first.
func (s *Store) ListEntries(_ context.Context) ([]core.WasteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.WasteEntry, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	// Insertion order is creation order unless the clock went backwards.
	sortNewestFirst(out)
	return out, nil
}

func (s *Store) GetEntry(_ context.Context, id string) (core.WasteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, core.ErrNotFound)
	}
	return s.items[i], nil
}

func (s *Store) UpdateEntry(_ context.Context, id string, d core.EntryDraft) (core.WasteEntry, error) {
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, core.ErrNotFound)
	}
	s.items[i] = s.items[i].Apply(d)
	return s.items[i], nil
}

func (s *Store) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete entry %s: %w", id, core.ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}
