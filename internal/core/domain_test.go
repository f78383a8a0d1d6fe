package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Fatalf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}
	for _, bad := range []string{"", "dairy", "Vegetables", "Fruits and Vegetables"} {
		_, err := ParseCategory(bad)
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("ParseCategory(%q) expected ErrInvalidCategory, got %v", bad, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "category" {
			t.Fatalf("ParseCategory(%q) expected ValidationError on category, got %v", bad, err)
		}
	}
}

func TestParseReason(t *testing.T) {
	for _, r := range Reasons() {
		if got, err := ParseReason(" " + string(r) + " "); err != nil || got != r {
			t.Fatalf("ParseReason(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := ParseReason("Burnt"); !errors.Is(err, ErrInvalidReason) {
		t.Fatalf("expected ErrInvalidReason, got %v", err)
	}
}

func TestEntryDraftValidate(t *testing.T) {
	good := EntryDraft{
		FoodItem: "Bread",
		Category: CategoryGrainsBakery,
		Quantity: Mass{Grams: 100},
		Reason:   ReasonSpoiled,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		draft EntryDraft
		want  error
	}{
		{"empty food item", EntryDraft{FoodItem: "  ", Category: CategoryDairy, Quantity: Mass{Grams: 500}, Reason: ReasonOther}, ErrEmptyFoodItem},
		{"long food item", EntryDraft{FoodItem: strings.Repeat("a", MaxFoodItemLength+1), Category: CategoryDairy, Quantity: Mass{Grams: 500}, Reason: ReasonOther}, ErrFieldTooLong},
		{"bad category", EntryDraft{FoodItem: "x", Category: "Snacks", Quantity: Mass{Grams: 500}, Reason: ReasonOther}, ErrInvalidCategory},
		{"zero quantity", EntryDraft{FoodItem: "x", Category: CategoryDairy, Quantity: Mass{}, Reason: ReasonOther}, ErrInvalidQuantity},
		{"below minimum", EntryDraft{FoodItem: "x", Category: CategoryDairy, Quantity: Mass{Grams: 99}, Reason: ReasonOther}, ErrQuantityTooSmall},
		{"bad reason", EntryDraft{FoodItem: "x", Category: CategoryDairy, Quantity: Mass{Grams: 500}, Reason: "Burnt"}, ErrInvalidReason},
		{"long notes", EntryDraft{FoodItem: "x", Category: CategoryDairy, Quantity: Mass{Grams: 500}, Reason: ReasonOther, Notes: strings.Repeat("n", MaxNotesLength+1)}, ErrFieldTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestApplyKeepsIdentity(t *testing.T) {
	e := WasteEntry{ID: "id-1", FoodItem: "Rice", Category: CategoryGrainsBakery, Quantity: Mass{Grams: 300}, Reason: ReasonExcess, UserID: DefaultUserID}
	got := e.Apply(EntryDraft{FoodItem: "Milk", Category: CategoryDairy, Quantity: Mass{Grams: 1000}, Reason: ReasonSpoiled})
	if got.ID != "id-1" || got.UserID != DefaultUserID {
		t.Fatalf("identity fields changed: %+v", got)
	}
	if got.FoodItem != "Milk" || got.Category != CategoryDairy || got.Quantity.Grams != 1000 || got.Reason != ReasonSpoiled || got.Notes != "" {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if got.Draft() != (EntryDraft{FoodItem: "Milk", Category: CategoryDairy, Quantity: Mass{Grams: 1000}, Reason: ReasonSpoiled}) {
		t.Fatalf("draft round trip mismatch: %+v", got.Draft())
	}
}
