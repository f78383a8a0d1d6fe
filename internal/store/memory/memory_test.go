package memory

import (
	"context"
	"testing"
	"time"

	"foodwaste/internal/core"
	"foodwaste/internal/store"
	"foodwaste/internal/store/storetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Repository { return New() })
}

func TestListStableForEqualTimestamps(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return fixed })
	ctx := context.Background()
	var ids []string
	for _, food := range []string{"a", "b", "c"} {
		e, err := s.CreateEntry(ctx, core.EntryDraft{FoodItem: food, Category: core.CategoryOther, Quantity: core.Mass{Grams: 100}, Reason: core.ReasonOther})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, e.ID)
	}
	list, _ := s.ListEntries(ctx)
	if list[0].ID != ids[2] || list[2].ID != ids[0] {
		t.Fatalf("expected reverse insertion order for equal timestamps")
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d", s.Len())
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.CreateEntry(ctx, core.EntryDraft{FoodItem: "a", Category: core.CategoryOther, Quantity: core.Mass{Grams: 100}, Reason: core.ReasonOther})
	list, _ := s.ListEntries(ctx)
	list[0].FoodItem = "mutated"
	again, _ := s.ListEntries(ctx)
	if again[0].FoodItem != "a" {
		t.Fatalf("store state mutated through returned slice")
	}
}
