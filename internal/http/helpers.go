package http

import (
	"context"
	"errors"
	"strconv"

	"foodwaste/internal/core"
	applog "foodwaste/internal/log"
)

// classify picks the log error type for an unexpected failure.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return applog.ErrorTypeTimeout
	}
	return applog.ErrorTypeDatabase
}

// entryJSON is the wire shape of a waste entry. The id is emitted under both
// "_id" and "id" so clients written against either key keep working.
type entryJSON struct {
	LegacyID  string  `json:"_id"`
	ID        string  `json:"id"`
	FoodItem  string  `json:"foodItem"`
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity"`
	Reason    string  `json:"reason"`
	Notes     string  `json:"notes"`
	UserID    string  `json:"userId"`
	CreatedAt string  `json:"createdAt"`
}

type statisticsJSON struct {
	TotalWaste   float64            `json:"totalWaste"`
	TotalEntries int                `json:"totalEntries"`
	AvgWaste     float64            `json:"avgWaste"`
	CarbonImpact float64            `json:"carbonImpact"`
	ByCategory   map[string]float64 `json:"byCategory"`
	ByReason     map[string]float64 `json:"byReason"`
}

func toEntryJSON(e core.WasteEntry) entryJSON {
	return entryJSON{
		LegacyID:  e.ID,
		ID:        e.ID,
		FoodItem:  e.FoodItem,
		Category:  string(e.Category),
		Quantity:  e.Quantity.Kilograms(),
		Reason:    string(e.Reason),
		Notes:     e.Notes,
		UserID:    e.UserID,
		CreatedAt: formatTimestamp(e.CreatedAt),
	}
}

func toEntriesJSON(entries []core.WasteEntry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	return out
}

func toStatisticsJSON(s core.Statistics) statisticsJSON {
	out := statisticsJSON{
		TotalWaste:   s.TotalWaste,
		TotalEntries: s.TotalEntries,
		AvgWaste:     s.AvgWaste,
		CarbonImpact: s.CarbonImpact,
		ByCategory:   make(map[string]float64, len(s.ByCategory)),
		ByReason:     make(map[string]float64, len(s.ByReason)),
	}
	for k, v := range s.ByCategory {
		out.ByCategory[string(k)] = v
	}
	for k, v := range s.ByReason {
		out.ByReason[string(k)] = v
	}
	return out
}

// entryView is a waste entry prepared for the history template.
type entryView struct {
	ID       string
	FoodItem string
	Category string
	Quantity string
	Reason   string
	Notes    string
	Date     string
}

func toEntryViews(entries []core.WasteEntry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryView{
			ID:       e.ID,
			FoodItem: e.FoodItem,
			Category: string(e.Category),
			Quantity: strconv.FormatFloat(e.Quantity.Kilograms(), 'f', -1, 64),
			Reason:   string(e.Reason),
			Notes:    e.Notes,
			Date:     e.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	return out
}

type option struct {
	Value string
	Label string
}

func categoryOptions() []option {
	out := make([]option, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		out = append(out, option{Value: string(c), Label: string(c)})
	}
	return out
}

func reasonOptions() []option {
	out := make([]option, 0, len(core.Reasons()))
	for _, r := range core.Reasons() {
		out = append(out, option{Value: string(r), Label: r.Label()})
	}
	return out
}
