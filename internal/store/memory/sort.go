package memory

import (
	"sort"

	"foodwaste/internal/core"
)

// sortNewestFirst orders by creation time descending, keeping the existing
// relative order for equal timestamps.
func sortNewestFirst(entries []core.WasteEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
