// Package http serves the JSON API and the server-rendered UI.
//
// This file implements request body parsing shared by both surfaces. A body
// may be JSON or form encoded; either way fields are read by name.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"foodwaste/internal/core"
)

// maxBodyBytes bounds request bodies; an entry is a few hundred bytes.
const maxBodyBytes = 64 << 10

var errMalformedBody = errors.New("malformed request body")

// RequestBodyParser reads a body once and exposes its fields by name.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads at most maxBodyBytes from r.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = fmt.Errorf("%w: body exceeds %d bytes", errMalformedBody, maxBodyBytes)
	}
	return p
}

// Parse decodes the body as JSON when it looks like an object, otherwise as
// form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}

	if trimmed[0] == '{' || strings.HasPrefix(p.contentType, "application/json") {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal([]byte(trimmed), &p.jsonData); err != nil {
			p.err = fmt.Errorf("%w: %v", errMalformedBody, err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(trimmed)
	if p.err != nil {
		p.err = fmt.Errorf("%w: %v", errMalformedBody, p.err)
	}
	return p.err
}

// Get returns a trimmed, sanitized string value for key.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Blank reports whether key is absent or holds a falsy value: null, "",
// false or the number 0.
func (p *RequestBodyParser) Blank(key string) bool {
	if p.jsonData != nil {
		switch v := p.jsonData[key].(type) {
		case nil:
			return true
		case string:
			return strings.TrimSpace(v) == ""
		case float64:
			return v == 0
		case bool:
			return !v
		default:
			return false
		}
	}
	return p.Get(key) == ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

var requiredFields = []string{"foodItem", "category", "quantity", "reason"}

// Draft builds an entry draft from the parsed body. A missing required
// field yields ErrMissingFields; a present but invalid one yields the
// field's validation error.
func (p *RequestBodyParser) Draft() (core.EntryDraft, error) {
	for _, f := range requiredFields {
		if p.Blank(f) {
			return core.EntryDraft{}, &core.ValidationError{Err: core.ErrMissingFields}
		}
	}

	category, err := core.ParseCategory(p.Get("category"))
	if err != nil {
		return core.EntryDraft{}, err
	}
	if p.jsonData != nil {
		switch p.jsonData["quantity"].(type) {
		case float64, string:
		default:
			return core.EntryDraft{}, &core.ValidationError{Field: "quantity", Err: core.ErrInvalidQuantity}
		}
	}
	grams, err := core.ParseKilogramsToGrams(p.Get("quantity"))
	if err != nil {
		return core.EntryDraft{}, &core.ValidationError{Field: "quantity", Err: err}
	}
	reason, err := core.ParseReason(p.Get("reason"))
	if err != nil {
		return core.EntryDraft{}, err
	}

	return core.EntryDraft{
		FoodItem: p.Get("foodItem"),
		Category: category,
		Quantity: core.Mass{Grams: grams},
		Reason:   reason,
		Notes:    p.Get("notes"),
	}, nil
}

// sanitizeInput strips control characters other than tab, newline and
// carriage return, and trims surrounding whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
