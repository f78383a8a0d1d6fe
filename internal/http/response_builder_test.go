package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestJSONResponseBuilder_Success(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Status(http.StatusCreated).
		Message("done").
		Count(0).
		Data([]string{}).
		Header("X-Test", "1").
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("X-Test") != "1" {
		t.Error("custom header not set")
	}

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["success"] != true || got["message"] != "done" {
		t.Errorf("envelope = %v", got)
	}
	if count, ok := got["count"]; !ok || count != float64(0) {
		t.Errorf("count = %v, want 0 present", count)
	}
	if _, ok := got["error"]; ok {
		t.Error("error field should be omitted on success")
	}
}

func TestJSONResponseBuilder_Error(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONError(http.StatusInternalServerError, "Error fetching statistics").
		Error(errors.New("connection reset")).
		Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d", w.Code)
	}
	var got apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Success || got.Message != "Error fetching statistics" || got.Error != "connection reset" {
		t.Errorf("envelope = %+v", got)
	}
	if got.Count != nil {
		t.Error("count should be omitted when unset")
	}
}

func TestJSONResponseBuilder_NilErrorIgnored(t *testing.T) {
	w := httptest.NewRecorder()
	NewJSONError(http.StatusBadRequest, "bad").Error(nil).Write(w)

	if strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("body = %s, want no error field", w.Body.String())
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	ts := time.Date(2025, 3, 9, 14, 5, 7, 123456789, loc)

	if got, want := formatTimestamp(ts), "2025-03-09T12:05:07.123Z"; got != want {
		t.Errorf("formatTimestamp() = %q, want %q", got, want)
	}
}

func TestHTMLErrorEscapes(t *testing.T) {
	w := httptest.NewRecorder()
	htmlError(w, http.StatusTooManyRequests, "<script>x</script>")

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Status code = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<script>") {
		t.Errorf("body not escaped: %s", w.Body.String())
	}
}
