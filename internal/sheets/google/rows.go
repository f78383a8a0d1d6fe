package google

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"foodwaste/internal/core"
)

// Column layout of the entries tab: A id, B created at, C food item,
// D category, E quantity (kg), F reason, G notes.
const lastColumn = "G"

func headerRow() []any {
	return []any{"ID", "Created At", "Food Item", "Category", "Quantity (kg)", "Reason", "Notes"}
}

func entryRow(e core.WasteEntry) []any {
	return []any{
		e.ID,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.FoodItem,
		string(e.Category),
		e.Quantity.Kilograms(),
		string(e.Reason),
		e.Notes,
	}
}

// parseEntryRow is the inverse of entryRow; header and malformed rows are
// rejected.
func parseEntryRow(cols []string) (core.WasteEntry, bool) {
	if len(cols) < 6 {
		return core.WasteEntry{}, false
	}
	created, err := time.Parse(time.RFC3339, cols[1])
	if err != nil {
		return core.WasteEntry{}, false
	}
	grams, err := core.ParseKilogramsToGrams(cols[4])
	if err != nil {
		return core.WasteEntry{}, false
	}
	e := core.WasteEntry{
		ID:        cols[0],
		CreatedAt: created,
		FoodItem:  cols[2],
		Category:  core.Category(cols[3]),
		Quantity:  core.Mass{Grams: grams},
		Reason:    core.Reason(cols[5]),
		UserID:    core.DefaultUserID,
	}
	if len(cols) > 6 {
		e.Notes = cols[6]
	}
	if e.ID == "" || !e.Category.Valid() || !e.Reason.Valid() {
		return core.WasteEntry{}, false
	}
	return e, true
}

func statisticsRows(s core.Statistics, now time.Time) [][]any {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total waste (kg)", s.TotalWaste},
		{"Entries", s.TotalEntries},
		{"Average per entry (kg)", s.AvgWaste},
		{"Carbon impact (kg CO2e)", s.CarbonImpact},
		{"Updated at", now.Format(time.RFC3339)},
		{},
		{"Category", "Quantity (kg)"},
	}
	for _, g := range s.CategoryBreakdown() {
		rows = append(rows, []any{g.Name, g.Quantity})
	}
	rows = append(rows, []any{}, []any{"Reason", "Quantity (kg)"})
	for _, g := range s.ReasonBreakdown() {
		rows = append(rows, []any{g.Name, g.Quantity})
	}
	return rows
}

// rowIndexOf returns the 1-based row whose first cell equals id.
func rowIndexOf(values [][]any, id string) (int, bool) {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1, true
		}
	}
	return 0, false
}

var rangeRowRE = regexp.MustCompile(`![A-Z]+(\d+)`)

// rowFromRange extracts the first row number from an A1 range such as
// "'Waste Entries'!A12:G12".
func rowFromRange(rng string) (int, bool) {
	m := rangeRowRE.FindStringSubmatch(rng)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// quoteSheet wraps a sheet title in single quotes for A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
