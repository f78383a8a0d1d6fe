package ui

import (
	"strconv"

	"foodwaste/internal/core"
)

// minLabelWidth is the bar width (percent) above which the percentage label
// fits inside the bar.
const minLabelWidth = 20.0

type Bar struct {
	Label     string
	Value     float64
	Width     float64 // percent of the largest value
	ShowLabel bool
}

// ValueText renders the value as kilograms with two decimals.
func (b Bar) ValueText() string { return strconv.FormatFloat(b.Value, 'f', 2, 64) }

// PercentText renders the width rounded to a whole percent.
func (b Bar) PercentText() string { return strconv.FormatFloat(b.Width, 'f', 0, 64) + "%" }

// WidthCSS is the width for an inline style attribute.
func (b Bar) WidthCSS() string { return strconv.FormatFloat(b.Width, 'f', 2, 64) + "%" }

// BuildBars sizes one bar per group relative to the largest group, largest
// first. An empty map yields no bars.
func BuildBars(groups map[string]float64) []Bar {
	rows := core.Breakdown(groups)
	if len(rows) == 0 {
		return nil
	}
	max := rows[0].Quantity
	bars := make([]Bar, 0, len(rows))
	for _, r := range rows {
		var width float64
		if max > 0 {
			width = r.Quantity / max * 100
		}
		bars = append(bars, Bar{
			Label:     r.Name,
			Value:     r.Quantity,
			Width:     width,
			ShowLabel: width > minLabelWidth,
		})
	}
	return bars
}

// CategoryBars and ReasonBars adapt the statistics maps to BuildBars.
func CategoryBars(s core.Statistics) []Bar {
	m := make(map[string]float64, len(s.ByCategory))
	for k, v := range s.ByCategory {
		m[string(k)] = v
	}
	return BuildBars(m)
}

func ReasonBars(s core.Statistics) []Bar {
	m := make(map[string]float64, len(s.ByReason))
	for k, v := range s.ByReason {
		m[string(k)] = v
	}
	return BuildBars(m)
}
