// Package ui holds the page view state and the pure transitions between
// states. Handlers build a ViewState by folding actions through Reduce and
// hand the result to the templates.
package ui

import (
	"fmt"
	"strings"

	"foodwaste/internal/core"
)

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabTrack     Tab = "track"
	TabHistory   Tab = "history"
	TabAnalytics Tab = "analytics"
	TabTips      Tab = "tips"
	TabAbout     Tab = "about"
)

type TabInfo struct {
	ID    Tab
	Label string
}

func Tabs() []TabInfo {
	return []TabInfo{
		{TabDashboard, "📊 Dashboard"},
		{TabTrack, "➕ Track Waste"},
		{TabHistory, "📜 History"},
		{TabAnalytics, "📈 Analytics"},
		{TabTips, "💡 Tips"},
		{TabAbout, "ℹ️ About"},
	}
}

// ParseTab maps a query value to a tab; unknown values fall back to the
// dashboard.
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range Tabs() {
		if info.ID == t {
			return t
		}
	}
	return TabDashboard
}

// FormState is the raw, unvalidated content of the track form.
type FormState struct {
	FoodItem string
	Category string
	Quantity string
	Reason   string
	Notes    string
}

// Complete reports whether every required field has a value.
func (f FormState) Complete() bool {
	return strings.TrimSpace(f.FoodItem) != "" &&
		strings.TrimSpace(f.Category) != "" &&
		strings.TrimSpace(f.Quantity) != "" &&
		strings.TrimSpace(f.Reason) != ""
}

// Draft parses the form into a domain draft.
func (f FormState) Draft() (core.EntryDraft, error) {
	if !f.Complete() {
		return core.EntryDraft{}, &core.ValidationError{Err: core.ErrMissingFields}
	}
	category, err := core.ParseCategory(f.Category)
	if err != nil {
		return core.EntryDraft{}, err
	}
	reason, err := core.ParseReason(f.Reason)
	if err != nil {
		return core.EntryDraft{}, err
	}
	grams, err := core.ParseKilogramsToGrams(f.Quantity)
	if err != nil {
		return core.EntryDraft{}, &core.ValidationError{Field: "quantity", Err: err}
	}
	d := core.EntryDraft{
		FoodItem: f.FoodItem,
		Category: category,
		Quantity: core.Mass{Grams: grams},
		Reason:   reason,
		Notes:    f.Notes,
	}.Normalize()
	return d, d.Validate()
}

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

// ViewState is everything the page needs besides the data itself.
type ViewState struct {
	Active     Tab
	Form       FormState
	Submitting bool
	Flash      Flash
}

func Initial() ViewState {
	return ViewState{Active: TabDashboard}
}

// HasFlash reports whether a message should be shown.
func (s ViewState) HasFlash() bool { return s.Flash.Message != "" }

type Action interface{ action() }

type (
	SelectTab       struct{ Tab Tab }
	EditField       struct{ Name, Value string }
	SubmitStarted   struct{}
	SubmitSucceeded struct{ Message string }
	SubmitFailed    struct{ Message string }
	DeleteSucceeded struct{ Message string }
	DeleteFailed    struct{ Message string }
	DismissFlash    struct{}
)

func (SelectTab) action()       {}
func (EditField) action()       {}
func (SubmitStarted) action()   {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}
func (DeleteSucceeded) action() {}
func (DeleteFailed) action()    {}
func (DismissFlash) action()    {}

// Reduce returns the state after applying a. It never mutates s.
func Reduce(s ViewState, a Action) ViewState {
	switch a := a.(type) {
	case SelectTab:
		s.Active = ParseTab(string(a.Tab))
	case EditField:
		s.Form = s.Form.with(a.Name, a.Value)
	case SubmitStarted:
		s.Submitting = true
		s.Flash = Flash{}
	case SubmitSucceeded:
		s.Submitting = false
		s.Form = FormState{}
		s.Active = TabDashboard
		s.Flash = Flash{Kind: FlashSuccess, Message: a.Message}
	case SubmitFailed:
		s.Submitting = false
		s.Active = TabTrack
		s.Flash = Flash{Kind: FlashError, Message: a.Message}
	case DeleteSucceeded:
		s.Flash = Flash{Kind: FlashSuccess, Message: a.Message}
	case DeleteFailed:
		s.Flash = Flash{Kind: FlashError, Message: a.Message}
	case DismissFlash:
		s.Flash = Flash{}
	default:
		panic(fmt.Sprintf("ui: unhandled action %T", a))
	}
	return s
}

func (f FormState) with(name, value string) FormState {
	switch name {
	case "foodItem":
		f.FoodItem = value
	case "category":
		f.Category = value
	case "quantity":
		f.Quantity = value
	case "reason":
		f.Reason = value
	case "notes":
		f.Notes = value
	}
	return f
}
