package seed

import (
	"reflect"
	"testing"
)

func TestDraftsAreValid(t *testing.T) {
	g := New()
	for i, d := range g.Drafts(200) {
		if err := d.Normalize().Validate(); err != nil {
			t.Fatalf("draft %d %+v invalid: %v", i, d, err)
		}
		if d.Quantity.Grams%10 != 0 || d.Quantity.Grams < 100 || d.Quantity.Grams > 3000 {
			t.Errorf("draft %d quantity = %d g", i, d.Quantity.Grams)
		}
	}
}

func TestNewWithSeedIsDeterministic(t *testing.T) {
	a := NewWithSeed(42).Drafts(20)
	b := NewWithSeed(42).Drafts(20)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different drafts")
	}
}

func TestDraftsZero(t *testing.T) {
	if got := New().Drafts(0); len(got) != 0 {
		t.Errorf("Drafts(0) returned %d drafts", len(got))
	}
}
