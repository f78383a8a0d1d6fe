package memory

import (
	"context"
	"testing"

	"foodwaste/internal/core"
)

func entry(id, food string) core.WasteEntry {
	return core.WasteEntry{ID: id, FoodItem: food, Category: core.CategoryOther, Reason: core.ReasonOther, Quantity: core.Mass{Grams: 100}}
}

func TestMirrorUpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	m := New()

	_ = m.Upsert(ctx, entry("1", "bread"))
	_ = m.Upsert(ctx, entry("2", "milk"))
	_ = m.Upsert(ctx, entry("1", "toast"))

	got, _ := m.MirroredEntries(ctx)
	if len(got) != 2 || got[0].FoodItem != "toast" || got[1].FoodItem != "milk" {
		t.Fatalf("unexpected rows: %+v", got)
	}

	if err := m.Remove(ctx, "missing"); err != nil {
		t.Fatalf("removing unknown id should be a no-op: %v", err)
	}
	writes := m.Writes
	_ = m.Remove(ctx, "missing")
	if m.Writes != writes {
		t.Error("no-op remove counted as a write")
	}

	_ = m.Remove(ctx, "1")
	got, _ = m.MirroredEntries(ctx)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected rows after remove: %+v", got)
	}
}

func TestMirrorReplaceAllAndStatistics(t *testing.T) {
	ctx := context.Background()
	m := New()
	_ = m.Upsert(ctx, entry("stale", "old"))

	_ = m.ReplaceAll(ctx, []core.WasteEntry{entry("a", "x"), entry("b", "y")})
	got, _ := m.MirroredEntries(ctx)
	if len(got) != 2 || got[0].ID != "a" {
		t.Fatalf("unexpected rows: %+v", got)
	}

	if _, ok := m.Statistics(); ok {
		t.Fatal("statistics should be unset")
	}
	_ = m.WriteStatistics(ctx, core.Aggregate(got))
	s, ok := m.Statistics()
	if !ok || s.TotalEntries != 2 {
		t.Fatalf("statistics = %+v, %v", s, ok)
	}
}
