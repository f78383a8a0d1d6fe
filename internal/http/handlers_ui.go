package http

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"foodwaste/internal/core"
	applog "foodwaste/internal/log"
	"foodwaste/internal/ui"
)

const (
	flashCreated       = "✅ Waste entry logged successfully!"
	flashDeleted       = "✅ Entry deleted successfully!"
	flashMissingFields = "❌ Please fill all required fields"
	flashSubmitError   = "❌ Error submitting. Please try again."
	flashDeleteError   = "❌ Error deleting entry. Please try again."
)

// notices are the flash messages a redirect may ask the index to show.
var notices = map[string]ui.Action{
	"created": ui.SubmitSucceeded{Message: flashCreated},
	"deleted": ui.DeleteSucceeded{Message: flashDeleted},
}

var templateFuncs = template.FuncMap{
	"kg": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}

type pageData struct {
	State      ui.ViewState
	Tabs       []ui.TabInfo
	Stats      core.Statistics
	Entries    []entryView
	CatBars    []ui.Bar
	ReasonBars []ui.Bar
	Tips       []ui.Tip
	Categories []option
	Reasons    []option
	LoadError  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := ui.Initial()
	if a, ok := notices[q.Get("notice")]; ok {
		state = ui.Reduce(state, a)
	}
	state = ui.Reduce(state, ui.SelectTab{Tab: ui.Tab(q.Get("tab"))})
	s.renderPage(w, r, http.StatusOK, state)
}

// handleUICreateEntry accepts the track form. Success redirects to the
// dashboard; failure re-renders the form with what the user typed.
func (s *Server) handleUICreateEntry(w http.ResponseWriter, r *http.Request) {
	state := ui.Reduce(ui.Initial(), ui.SelectTab{Tab: ui.TabTrack})

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		state = ui.Reduce(state, ui.SubmitFailed{Message: flashSubmitError})
		s.renderPage(w, r, http.StatusBadRequest, state)
		return
	}
	for _, f := range []string{"foodItem", "category", "quantity", "reason", "notes"} {
		state = ui.Reduce(state, ui.EditField{Name: f, Value: p.Get(f)})
	}
	state = ui.Reduce(state, ui.SubmitStarted{})

	draft, err := state.Form.Draft()
	if err == nil {
		ctx, cancel := s.storeContext(r)
		_, err = s.svc.CreateEntry(ctx, draft)
		cancel()
	}
	if err != nil {
		status, msg := s.uiFailure(r, err, applog.OpCreate, flashSubmitError)
		state = ui.Reduce(state, ui.SubmitFailed{Message: msg})
		s.renderPage(w, r, status, state)
		return
	}

	http.Redirect(w, r, "/?"+url.Values{"tab": {string(ui.TabDashboard)}, "notice": {"created"}}.Encode(), http.StatusSeeOther)
}

func (s *Server) handleUIDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	err := s.svc.DeleteEntry(ctx, r.PathValue("id"))
	cancel()

	if err != nil {
		state := ui.Reduce(ui.Initial(), ui.SelectTab{Tab: ui.TabHistory})
		status, msg := s.uiFailure(r, err, applog.OpDelete, flashDeleteError)
		state = ui.Reduce(state, ui.DeleteFailed{Message: msg})
		s.renderPage(w, r, status, state)
		return
	}
	http.Redirect(w, r, "/?"+url.Values{"tab": {string(ui.TabHistory)}, "notice": {"deleted"}}.Encode(), http.StatusSeeOther)
}

// uiFailure maps err to a status and a flash message, logging unexpected
// failures.
func (s *Server) uiFailure(r *http.Request, err error, op, fallback string) (int, string) {
	var verr *core.ValidationError
	switch {
	case errors.Is(err, core.ErrMissingFields):
		return http.StatusBadRequest, flashMissingFields
	case errors.As(err, &verr):
		return http.StatusBadRequest, "❌ Error: " + verr.Error()
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "❌ Error: " + msgNotFound
	}
	applog.LogError(r.Context(), "UI request failed", err, classify(err), op,
		applog.NewFields().WithComponent(applog.ComponentHTTP))
	return http.StatusInternalServerError, fallback
}

// renderPage loads entries and statistics and executes index.html. A store
// failure still renders the page, with a notice in place of the data.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, state ui.ViewState) {
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		htmlError(w, http.StatusInternalServerError, "templates not loaded")
		return
	}

	data := pageData{
		State:      state,
		Tabs:       ui.Tabs(),
		Tips:       ui.Tips(),
		Categories: categoryOptions(),
		Reasons:    reasonOptions(),
		Stats:      core.Aggregate(nil),
	}

	ctx, cancel := s.storeContext(r)
	entries, err := s.svc.ListEntries(ctx)
	cancel()
	if err != nil {
		applog.LogError(r.Context(), "Failed loading entries for page", err, classify(err), applog.OpList, nil)
		data.LoadError = "Could not load your entries. Please try again."
	} else {
		// One listing serves both the history and the charts.
		data.Entries = toEntryViews(entries)
		data.Stats = core.Aggregate(entries)
	}
	data.CatBars = ui.CategoryBars(data.Stats)
	data.ReasonBars = ui.ReasonBars(data.Stats)

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		applog.LogError(r.Context(), "Index template execution failed", err, applog.ErrorTypeInternal, applog.OpRender, nil)
		htmlError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
