package http

import (
	"errors"
	"net/http"

	"foodwaste/internal/core"
	applog "foodwaste/internal/log"
)

const (
	msgMissingFields = "Please provide all required fields"
	msgInvalidEntry  = "Invalid waste entry"
	msgInvalidBody   = "Invalid request body"
	msgNotFound      = "Waste entry not found"
	msgCreated       = "Waste entry created successfully"
	msgUpdated       = "Waste entry updated successfully"
	msgDeleted       = "Waste entry deleted successfully"
	msgAPIRunning    = "Food Wastage Tracker API is running"
)

func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().
		Message(msgAPIRunning).
		Timestamp(s.now()).
		Write(w)
}

func handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	NewJSONError(http.StatusNotFound, "Route not found").Write(w)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	entries, err := s.svc.ListEntries(ctx)
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpList, "Error fetching waste entries")
		return
	}
	NewJSONResponse().
		Count(len(entries)).
		Data(toEntriesJSON(entries)).
		Write(w)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	e, err := s.svc.GetEntry(ctx, r.PathValue("id"))
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpRead, "Error fetching waste entry")
		return
	}
	NewJSONResponse().Data(toEntryJSON(e)).Write(w)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	draft, err := parseDraft(r)
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpCreate, "Error creating waste entry")
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	e, err := s.svc.CreateEntry(ctx, draft)
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpCreate, "Error creating waste entry")
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Message(msgCreated).
		Data(toEntryJSON(e)).
		Write(w)
}

// handleUpdateEntry replaces every writable field; partial bodies are
// rejected as missing fields.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	draft, err := parseDraft(r)
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpUpdate, "Error updating waste entry")
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	e, err := s.svc.UpdateEntry(ctx, r.PathValue("id"), draft)
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpUpdate, "Error updating waste entry")
		return
	}
	NewJSONResponse().
		Message(msgUpdated).
		Data(toEntryJSON(e)).
		Write(w)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	if err := s.svc.DeleteEntry(ctx, r.PathValue("id")); err != nil {
		s.writeAPIError(w, r, err, applog.OpDelete, "Error deleting waste entry")
		return
	}
	NewJSONResponse().Message(msgDeleted).Write(w)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	stats, err := s.svc.Statistics(ctx)
	if err != nil {
		s.writeAPIError(w, r, err, applog.OpStatistics, "Error fetching statistics")
		return
	}
	NewJSONResponse().Data(toStatisticsJSON(stats)).Write(w)
}

func parseDraft(r *http.Request) (core.EntryDraft, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return core.EntryDraft{}, err
	}
	return p.Draft()
}

// writeAPIError maps err to a status and envelope: validation failures are
// 400, unknown ids 404, everything else 500 with serverMessage.
func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, err error, op, serverMessage string) {
	var verr *core.ValidationError
	switch {
	case errors.Is(err, core.ErrMissingFields):
		NewJSONError(http.StatusBadRequest, msgMissingFields).Write(w)
	case errors.As(err, &verr):
		NewJSONError(http.StatusBadRequest, msgInvalidEntry).Error(verr).Write(w)
	case errors.Is(err, errMalformedBody):
		NewJSONError(http.StatusBadRequest, msgInvalidBody).Error(err).Write(w)
	case errors.Is(err, core.ErrNotFound):
		NewJSONError(http.StatusNotFound, msgNotFound).Write(w)
	default:
		applog.LogError(r.Context(), "API request failed", err, classify(err), op,
			applog.NewFields().WithComponent(applog.ComponentHTTP))
		NewJSONError(http.StatusInternalServerError, serverMessage).Error(err).Write(w)
	}
}
