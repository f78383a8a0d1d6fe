package core

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func entry(c Category, r Reason, grams int64) WasteEntry {
	return WasteEntry{FoodItem: "x", Category: c, Reason: r, Quantity: Mass{Grams: grams}}
}

func TestAggregateScenario(t *testing.T) {
	entries := []WasteEntry{
		entry(CategoryDairy, ReasonSpoiled, 1200),
		entry(CategoryDairy, ReasonExcess, 800),
		entry(CategoryOther, ReasonSpoiled, 2000),
	}
	got := Aggregate(entries)

	if got.TotalWaste != 4.00 || got.TotalEntries != 3 || got.AvgWaste != 1.33 || got.CarbonImpact != 10.00 {
		t.Fatalf("unexpected scalars: %+v", got)
	}
	wantCat := map[Category]float64{CategoryDairy: 2.0, CategoryOther: 2.0}
	if !reflect.DeepEqual(got.ByCategory, wantCat) {
		t.Fatalf("byCategory = %v, want %v", got.ByCategory, wantCat)
	}
	wantReason := map[Reason]float64{ReasonSpoiled: 3.2, ReasonExcess: 0.8}
	if !reflect.DeepEqual(got.ByReason, wantReason) {
		t.Fatalf("byReason = %v, want %v", got.ByReason, wantReason)
	}
}

func TestAggregateEmpty(t *testing.T) {
	for _, in := range [][]WasteEntry{nil, {}} {
		got := Aggregate(in)
		if got.TotalWaste != 0 || got.TotalEntries != 0 || got.AvgWaste != 0 || got.CarbonImpact != 0 {
			t.Fatalf("expected zero snapshot, got %+v", got)
		}
		if got.ByCategory == nil || len(got.ByCategory) != 0 || got.ByReason == nil || len(got.ByReason) != 0 {
			t.Fatalf("expected empty non-nil maps, got %v %v", got.ByCategory, got.ByReason)
		}
	}
}

func TestAggregateGroupSumsAreNotRounded(t *testing.T) {
	got := Aggregate([]WasteEntry{
		entry(CategoryMeatFish, ReasonOvercooked, 1234),
		entry(CategoryMeatFish, ReasonOvercooked, 1),
	})
	if got.ByCategory[CategoryMeatFish] != 1.235 {
		t.Fatalf("group sum rounded: %v", got.ByCategory[CategoryMeatFish])
	}
	if got.TotalWaste != 1.24 {
		t.Fatalf("total = %v, want 1.24", got.TotalWaste)
	}
}

func randomEntries(rng *rand.Rand, n int) []WasteEntry {
	cats := Categories()
	reasons := Reasons()
	out := make([]WasteEntry, n)
	for i := range out {
		out[i] = entry(cats[rng.Intn(len(cats))], reasons[rng.Intn(len(reasons))], int64(100+rng.Intn(50000)))
	}
	return out
}

func TestAggregateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		entries := randomEntries(rng, rng.Intn(40))
		got := Aggregate(entries)

		var rawTotal int64
		present := map[Category]bool{}
		for _, e := range entries {
			rawTotal += e.Quantity.Grams
			present[e.Category] = true
		}
		rawKg := float64(rawTotal) / 1000
		n := float64(len(entries))

		if got.TotalEntries != len(entries) {
			t.Fatalf("count mismatch")
		}
		if math.Abs(got.TotalWaste-rawKg) > 0.005+1e-9 {
			t.Fatalf("total %v too far from %v", got.TotalWaste, rawKg)
		}
		if math.Abs(got.CarbonImpact-rawKg*CarbonFactor) > 0.005+1e-9 {
			t.Fatalf("carbon impact %v too far from %v*2.5", got.CarbonImpact, rawKg)
		}
		if len(entries) == 0 {
			if got.AvgWaste != 0 {
				t.Fatalf("avg on empty set = %v", got.AvgWaste)
			}
		} else if math.Abs(got.AvgWaste-rawKg/n) > 0.005+1e-9 {
			t.Fatalf("avg %v too far from total/count", got.AvgWaste)
		}

		if len(got.ByCategory) != len(present) {
			t.Fatalf("byCategory keys %v, present %v", got.ByCategory, present)
		}
		var catSum float64
		for c, v := range got.ByCategory {
			if !present[c] {
				t.Fatalf("category %q not in input", c)
			}
			catSum += v
		}
		if math.Abs(catSum-rawKg) > 1e-9 {
			t.Fatalf("sum of byCategory %v != unrounded total %v", catSum, rawKg)
		}

		shuffled := append([]WasteEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if !reflect.DeepEqual(Aggregate(shuffled), got) {
			t.Fatalf("aggregation depends on order")
		}
	}
}

func TestAggregateRoundsHalfUp(t *testing.T) {
	tests := []struct {
		name      string
		grams     []int64
		wantTotal float64
		wantAvg   float64
		wantCO2   float64
	}{
		{"exact hundredth", []int64{4000}, 4, 4, 10},
		{"tie on total", []int64{125}, 0.13, 0.13, 0.31},
		{"tie above one kg", []int64{1125}, 1.13, 1.13, 2.81},
		{"tie on average", []int64{150, 100}, 0.25, 0.13, 0.63},
		{"tie on carbon", []int64{1002}, 1, 1, 2.51},
		{"below tie", []int64{1001}, 1, 1, 2.5},
		{"thirds", []int64{1000, 1000, 2000}, 4, 1.33, 10},
		{"uneven average", []int64{1000, 1000, 100}, 2.1, 0.7, 5.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []WasteEntry
			for _, g := range tt.grams {
				entries = append(entries, entry(CategoryOther, ReasonExcess, g))
			}
			got := Aggregate(entries)
			if got.TotalWaste != tt.wantTotal {
				t.Errorf("TotalWaste = %v, want %v", got.TotalWaste, tt.wantTotal)
			}
			if got.AvgWaste != tt.wantAvg {
				t.Errorf("AvgWaste = %v, want %v", got.AvgWaste, tt.wantAvg)
			}
			if got.CarbonImpact != tt.wantCO2 {
				t.Errorf("CarbonImpact = %v, want %v", got.CarbonImpact, tt.wantCO2)
			}
		})
	}
}

func TestBreakdownOrdering(t *testing.T) {
	s := Aggregate([]WasteEntry{
		entry(CategoryDairy, ReasonSpoiled, 500),
		entry(CategoryOther, ReasonSpoiled, 2000),
		entry(CategoryGrainsBakery, ReasonExcess, 500),
	})
	got := s.CategoryBreakdown()
	want := []GroupAmount{
		{Name: "Other", Quantity: 2},
		{Name: "Dairy", Quantity: 0.5},
		{Name: "Grains & Bakery", Quantity: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("breakdown = %+v, want %+v", got, want)
	}
	if r := s.ReasonBreakdown(); len(r) != 2 || r[0].Name != "Spoiled" {
		t.Fatalf("reason breakdown = %+v", r)
	}
}
