package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodwaste/internal/core"
)

func newParser(t *testing.T, contentType, body string) *RequestBodyParser {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return p
}

func TestRequestBodyParser_JSONAndForm(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantJSON    bool
	}{
		{"json content type", "application/json", `{"foodItem":" Rice ","quantity":1.5}`, true},
		{"json without content type", "", `{"foodItem":"Rice","quantity":1.5}`, true},
		{"form", "application/x-www-form-urlencoded", "foodItem=+Rice+&quantity=1.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.contentType, tt.body)
			if p.IsJSON() != tt.wantJSON {
				t.Errorf("IsJSON() = %v, want %v", p.IsJSON(), tt.wantJSON)
			}
			if got := p.Get("foodItem"); got != "Rice" {
				t.Errorf("Get(foodItem) = %q, want %q", got, "Rice")
			}
			if got := p.Get("quantity"); got != "1.5" {
				t.Errorf("Get(quantity) = %q, want %q", got, "1.5")
			}
			if got := p.Get("missing"); got != "" {
				t.Errorf("Get(missing) = %q, want empty", got)
			}
		})
	}
}

func TestRequestBodyParser_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"foodItem":`))
	req.Header.Set("Content-Type", "application/json")
	p := NewRequestBodyParser(req)

	err := p.Parse()
	if !errors.Is(err, errMalformedBody) {
		t.Fatalf("Parse() error = %v, want errMalformedBody", err)
	}
	// A second call returns the cached result.
	if err2 := p.Parse(); !errors.Is(err2, errMalformedBody) {
		t.Errorf("second Parse() error = %v", err2)
	}
}

func TestRequestBodyParser_OversizedBody(t *testing.T) {
	body := `{"notes":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	p := NewRequestBodyParser(req)

	if err := p.Parse(); !errors.Is(err, errMalformedBody) {
		t.Fatalf("Parse() error = %v, want errMalformedBody", err)
	}
}

func TestRequestBodyParser_Blank(t *testing.T) {
	p := newParser(t, "application/json",
		`{"a":null,"b":"  ","c":0,"d":false,"e":"x","f":0.5,"g":true,"h":[]}`)

	want := map[string]bool{
		"a": true, "b": true, "c": true, "d": true, "absent": true,
		"e": false, "f": false, "g": false, "h": false,
	}
	for key, blank := range want {
		if got := p.Blank(key); got != blank {
			t.Errorf("Blank(%q) = %v, want %v", key, got, blank)
		}
	}
}

func TestRequestBodyParser_Draft(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   error
		wantGrams int64
	}{
		{
			name:      "numeric quantity",
			body:      `{"foodItem":"Bread","category":"Grains & Bakery","quantity":0.75,"reason":"Spoiled"}`,
			wantGrams: 750,
		},
		{
			name:      "string quantity with comma",
			body:      `{"foodItem":"Bread","category":"Grains & Bakery","quantity":"1,2","reason":"Spoiled"}`,
			wantGrams: 1200,
		},
		{
			name:    "missing reason",
			body:    `{"foodItem":"Bread","category":"Grains & Bakery","quantity":1}`,
			wantErr: core.ErrMissingFields,
		},
		{
			name:    "bad category checked before quantity",
			body:    `{"foodItem":"Bread","category":"Bakery","quantity":"abc","reason":"Spoiled"}`,
			wantErr: core.ErrInvalidCategory,
		},
		{
			name:    "non numeric quantity",
			body:    `{"foodItem":"Bread","category":"Dairy","quantity":"abc","reason":"Spoiled"}`,
			wantErr: core.ErrInvalidQuantity,
		},
		{
			name:    "array quantity",
			body:    `{"foodItem":"Bread","category":"Dairy","quantity":[1],"reason":"Spoiled"}`,
			wantErr: core.ErrInvalidQuantity,
		},
		{
			name:    "bad reason",
			body:    `{"foodItem":"Bread","category":"Dairy","quantity":1,"reason":"Lazy"}`,
			wantErr: core.ErrInvalidReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := newParser(t, "application/json", tt.body).Draft()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Draft() error = %v, want %v", err, tt.wantErr)
				}
				var verr *core.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Draft() error %T is not a ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Draft() error = %v", err)
			}
			if d.Quantity.Grams != tt.wantGrams {
				t.Errorf("Quantity = %d g, want %d g", d.Quantity.Grams, tt.wantGrams)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  hello  ", "hello"},
		{"a\x00b\x07c", "abc"},
		{"line1\nline2\tend", "line1\nline2\tend"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
