// Package memory is an in-process EntryMirror for tests and local runs.
package memory

import (
	"context"
	"sync"

	"foodwaste/internal/core"
	ports "foodwaste/internal/sheets"
)

var (
	_ ports.EntryMirror  = (*Mirror)(nil)
	_ ports.MirrorReader = (*Mirror)(nil)
)

// Mirror keeps rows in first-seen order, keyed by entry id.
type Mirror struct {
	mu    sync.Mutex
	order []string
	rows  map[string]core.WasteEntry
	stats *core.Statistics

	// Writes counts mutating calls, for asserting idempotence in tests.
	Writes int
}

func New() *Mirror {
	return &Mirror{rows: make(map[string]core.WasteEntry)}
}

func (m *Mirror) Upsert(_ context.Context, e core.WasteEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.rows[e.ID] = e
	m.Writes++
	return nil
}

func (m *Mirror) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return nil
	}
	delete(m.rows, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.Writes++
	return nil
}

func (m *Mirror) ReplaceAll(_ context.Context, entries []core.WasteEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = make([]string, 0, len(entries))
	m.rows = make(map[string]core.WasteEntry, len(entries))
	for _, e := range entries {
		if _, dup := m.rows[e.ID]; !dup {
			m.order = append(m.order, e.ID)
		}
		m.rows[e.ID] = e
	}
	m.Writes++
	return nil
}

func (m *Mirror) WriteStatistics(_ context.Context, s core.Statistics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = &s
	m.Writes++
	return nil
}

func (m *Mirror) MirroredEntries(_ context.Context) ([]core.WasteEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.WasteEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

// Statistics returns the last written snapshot, if any.
func (m *Mirror) Statistics() (core.Statistics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		return core.Statistics{}, false
	}
	return *m.stats, true
}
