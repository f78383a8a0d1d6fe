// Package http provides HTTP server and handler implementations.
//
// This file implements a builder for the JSON envelope every API route
// answers with: {success, message, count, data, error}.

package http

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

type apiEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// JSONResponseBuilder provides a fluent API for API responses.
type JSONResponseBuilder struct {
	statusCode int
	envelope   apiEnvelope
	headers    map[string]string
}

// NewJSONResponse starts a successful 200 response.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		envelope:   apiEnvelope{Success: true},
		headers:    make(map[string]string),
	}
}

// NewJSONError starts a failed response with the given status.
func NewJSONError(statusCode int, message string) *JSONResponseBuilder {
	b := NewJSONResponse().Status(statusCode).Message(message)
	b.envelope.Success = false
	return b
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Message(message string) *JSONResponseBuilder {
	b.envelope.Message = message
	return b
}

// Count sets the count field, which is emitted even when zero.
func (b *JSONResponseBuilder) Count(n int) *JSONResponseBuilder {
	b.envelope.Count = &n
	return b
}

func (b *JSONResponseBuilder) Data(data any) *JSONResponseBuilder {
	b.envelope.Data = data
	return b
}

// Error records err's message in the error field. A nil err is ignored.
func (b *JSONResponseBuilder) Error(err error) *JSONResponseBuilder {
	if err != nil {
		b.envelope.Error = err.Error()
	}
	return b
}

func (b *JSONResponseBuilder) Timestamp(t time.Time) *JSONResponseBuilder {
	b.envelope.Timestamp = formatTimestamp(t)
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if err := json.NewEncoder(w).Encode(b.envelope); err != nil {
		slog.Error("Failed to encode JSON response", "component", "http", "error", err)
	}
}

// htmlError writes a minimal escaped HTML error page, used when the page
// template itself cannot be rendered.
func htmlError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(`<!doctype html><div class="error">` + template.HTMLEscapeString(message) + `</div>`))
}

// formatTimestamp renders t in UTC with millisecond precision, the format
// JavaScript clients produce with toISOString.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
