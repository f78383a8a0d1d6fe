package core

import (
	"sort"
)

// CarbonFactor is a fixed linear proxy of kg CO2-equivalent per kg of food
// wasted. It is not a calibrated estimate.
const CarbonFactor = 2.5

// carbonFactorTenths is CarbonFactor scaled so carbon impact stays in integers.
const carbonFactorTenths = 25

// Statistics is the derived summary of a snapshot of entries. It is never
// stored and has no identity of its own.
type Statistics struct {
	TotalWaste   float64 // kg, 2 decimals
	TotalEntries int
	AvgWaste     float64 // kg per entry, 2 decimals
	CarbonImpact float64 // kg CO2e, 2 decimals
	ByCategory   map[Category]float64
	ByReason     map[Reason]float64
}

// GroupAmount is one row of a sorted breakdown.
type GroupAmount struct {
	Name     string
	Quantity float64
}

// Aggregate reduces entries to a Statistics value. It is pure, tolerates an
// empty input and yields the same result for any ordering of entries.
//
// The scalar fields are rounded half up to two decimals from the exact gram
// total, so 0.125 kg reports as 0.13. The per-group sums are left exact.
func Aggregate(entries []WasteEntry) Statistics {
	var total int64
	byCategory := make(map[Category]int64)
	byReason := make(map[Reason]int64)

	for _, e := range entries {
		total += e.Quantity.Grams
		byCategory[e.Category] += e.Quantity.Grams
		byReason[e.Reason] += e.Quantity.Grams
	}

	stats := Statistics{
		TotalEntries: len(entries),
		ByCategory:   make(map[Category]float64, len(byCategory)),
		ByReason:     make(map[Reason]float64, len(byReason)),
	}

	// 10 g is one hundredth of a kilogram.
	stats.TotalWaste = hundredths(total, 10)
	if n := int64(stats.TotalEntries); n > 0 {
		stats.AvgWaste = hundredths(total, 10*n)
	}
	stats.CarbonImpact = hundredths(total*carbonFactorTenths, 100)

	for c, g := range byCategory {
		stats.ByCategory[c] = Mass{Grams: g}.Kilograms()
	}
	for r, g := range byReason {
		stats.ByReason[r] = Mass{Grams: g}.Kilograms()
	}
	return stats
}

// hundredths rounds num/den half up and returns it in units of 0.01.
// num must be non-negative and den positive.
func hundredths(num, den int64) float64 {
	q, r := num/den, num%den
	if 2*r >= den {
		q++
	}
	return float64(q) / 100
}

// CategoryBreakdown returns ByCategory sorted by quantity, largest first.
func (s Statistics) CategoryBreakdown() []GroupAmount {
	m := make(map[string]float64, len(s.ByCategory))
	for k, v := range s.ByCategory {
		m[string(k)] = v
	}
	return Breakdown(m)
}

// ReasonBreakdown returns ByReason sorted by quantity, largest first.
func (s Statistics) ReasonBreakdown() []GroupAmount {
	m := make(map[string]float64, len(s.ByReason))
	for k, v := range s.ByReason {
		m[string(k)] = v
	}
	return Breakdown(m)
}

// Breakdown sorts a group map by value descending, ties broken by name.
func Breakdown(groups map[string]float64) []GroupAmount {
	out := make([]GroupAmount, 0, len(groups))
	for name, q := range groups {
		out = append(out, GroupAmount{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out
}
