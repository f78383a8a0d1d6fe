// Package storetest holds the behavioural contract every store.Repository
// backend must satisfy.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodwaste/internal/core"
	"foodwaste/internal/store"
)

// Factory returns an empty repository; cleanup is registered on t.
type Factory func(t *testing.T) store.Repository

func draft(food string, c core.Category, grams int64, r core.Reason) core.EntryDraft {
	return core.EntryDraft{FoodItem: food, Category: c, Quantity: core.Mass{Grams: grams}, Reason: r}
}

// Run executes the contract suite against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("CreateAssignsIdentity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		a, err := repo.CreateEntry(ctx, draft("Milk", core.CategoryDairy, 1200, core.ReasonSpoiled))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		b, err := repo.CreateEntry(ctx, draft("Milk", core.CategoryDairy, 1200, core.ReasonSpoiled))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if a.ID == "" || a.ID == b.ID {
			t.Fatalf("ids not unique: %q %q", a.ID, b.ID)
		}
		if a.CreatedAt.IsZero() {
			t.Fatalf("createdAt not assigned")
		}
		if a.UserID != core.DefaultUserID {
			t.Fatalf("userId = %q", a.UserID)
		}
		got, err := repo.GetEntry(ctx, a.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != a.ID || got.FoodItem != "Milk" || got.Quantity.Grams != 1200 || got.Category != core.CategoryDairy || got.Reason != core.ReasonSpoiled {
			t.Fatalf("round trip mismatch: %+v", got)
		}
		if !got.CreatedAt.Equal(a.CreatedAt) {
			t.Fatalf("createdAt changed: %v vs %v", got.CreatedAt, a.CreatedAt)
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		var ids []string
		for _, food := range []string{"Apple", "Bread", "Cheese"} {
			e, err := repo.CreateEntry(ctx, draft(food, core.CategoryOther, 100, core.ReasonOther))
			if err != nil {
				t.Fatalf("create %s: %v", food, err)
			}
			ids = append(ids, e.ID)
			time.Sleep(2 * time.Millisecond)
		}
		list, err := repo.ListEntries(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(list))
		}
		for i, want := range []string{ids[2], ids[1], ids[0]} {
			if list[i].ID != want {
				t.Fatalf("list[%d] = %s, want %s", i, list[i].FoodItem, want)
			}
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		repo := newRepo(t)
		list, err := repo.ListEntries(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d", len(list))
		}
	})

	t.Run("UpdateReplacesFields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		orig, err := repo.CreateEntry(ctx, core.EntryDraft{
			FoodItem: "Rice", Category: core.CategoryGrainsBakery, Quantity: core.Mass{Grams: 300},
			Reason: core.ReasonExcess, Notes: "leftovers",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		upd, err := repo.UpdateEntry(ctx, orig.ID, draft("Fish", core.CategoryMeatFish, 750, core.ReasonOvercooked))
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if upd.ID != orig.ID || !upd.CreatedAt.Equal(orig.CreatedAt) {
			t.Fatalf("identity changed: %+v vs %+v", upd, orig)
		}
		got, err := repo.GetEntry(ctx, orig.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.FoodItem != "Fish" || got.Category != core.CategoryMeatFish || got.Quantity.Grams != 750 || got.Reason != core.ReasonOvercooked || got.Notes != "" {
			t.Fatalf("update not applied: %+v", got)
		}
	})

	t.Run("MissingIDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		const missing = "00000000-0000-4000-8000-000000000000"
		if _, err := repo.GetEntry(ctx, missing); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("get missing: expected ErrNotFound, got %v", err)
		}
		if _, err := repo.UpdateEntry(ctx, missing, draft("x", core.CategoryOther, 100, core.ReasonOther)); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("update missing: expected ErrNotFound, got %v", err)
		}
		if err := repo.DeleteEntry(ctx, missing); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("delete missing: expected ErrNotFound, got %v", err)
		}
		if err := repo.DeleteEntry(ctx, "not-a-uuid"); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("delete malformed id: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteIsPermanent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		keep, _ := repo.CreateEntry(ctx, draft("Keep", core.CategoryDairy, 1000, core.ReasonSpoiled))
		gone, _ := repo.CreateEntry(ctx, draft("Gone", core.CategoryOther, 2000, core.ReasonExcess))

		before, _ := repo.ListEntries(ctx)
		statsBefore := core.Aggregate(before)

		if err := repo.DeleteEntry(ctx, "00000000-0000-4000-8000-000000000001"); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		unchanged, _ := repo.ListEntries(ctx)
		if core.Aggregate(unchanged).TotalWaste != statsBefore.TotalWaste {
			t.Fatalf("failed delete changed statistics")
		}

		if err := repo.DeleteEntry(ctx, gone.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetEntry(ctx, gone.ID); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("deleted entry still readable: %v", err)
		}
		if err := repo.DeleteEntry(ctx, gone.ID); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("second delete: expected ErrNotFound, got %v", err)
		}
		list, _ := repo.ListEntries(ctx)
		if len(list) != 1 || list[0].ID != keep.ID {
			t.Fatalf("unexpected remaining entries: %+v", list)
		}
	})

	t.Run("RejectsInvalidDraft", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		_, err := repo.CreateEntry(ctx, draft("Zero", core.CategoryOther, 0, core.ReasonOther))
		var verr *core.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		list, _ := repo.ListEntries(ctx)
		if len(list) != 0 {
			t.Fatalf("invalid draft was persisted")
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := newRepo(t).Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
