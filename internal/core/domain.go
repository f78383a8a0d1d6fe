package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CategoryFruitsVegetables Category = "Fruits & Vegetables"
	CategoryGrainsBakery     Category = "Grains & Bakery"
	CategoryDairy            Category = "Dairy"
	CategoryMeatFish         Category = "Meat & Fish"
	CategoryPreparedFood     Category = "Prepared Food"
	CategoryOther            Category = "Other"
)

const (
	ReasonSpoiled    Reason = "Spoiled"
	ReasonOvercooked Reason = "Overcooked"
	ReasonExcess     Reason = "Excess"
	ReasonDisliked   Reason = "Disliked"
	ReasonOther      Reason = "Other"
)

const (
	// DefaultUserID is stamped on every entry; there is a single implicit owner.
	DefaultUserID = "default-user"

	MaxFoodItemLength = 200
	MaxNotesLength    = 1000
)

type (
	Category string
	Reason   string

	// WasteEntry is one logged disposal event.
	WasteEntry struct {
		ID        string
		FoodItem  string
		Category  Category
		Quantity  Mass
		Reason    Reason
		Notes     string
		UserID    string
		CreatedAt time.Time
	}

	// EntryDraft holds the client-writable fields of an entry, used for both
	// create and full-replace update.
	EntryDraft struct {
		FoodItem string
		Category Category
		Quantity Mass
		Reason   Reason
		Notes    string
	}
)

var (
	ErrNotFound          = errors.New("waste entry not found")
	ErrMissingFields     = errors.New("please provide all required fields")
	ErrEmptyFoodItem     = errors.New("empty food item")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidReason     = errors.New("invalid reason")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrQuantityTooSmall  = errors.New("quantity below minimum of 0.1 kg")
	ErrQuantityPrecision = errors.New("quantity has more than 3 decimal places")
	ErrFieldTooLong      = errors.New("field too long")
)

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryFruitsVegetables,
		CategoryGrainsBakery,
		CategoryDairy,
		CategoryMeatFish,
		CategoryPreparedFood,
		CategoryOther,
	}
}

// Reasons returns the closed reason set in display order.
func Reasons() []Reason {
	return []Reason{ReasonSpoiled, ReasonOvercooked, ReasonExcess, ReasonDisliked, ReasonOther}
}

// ParseCategory accepts only exact members of the category set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", invalid("category", fmt.Errorf("%w: %q", ErrInvalidCategory, s))
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFruitsVegetables, CategoryGrainsBakery, CategoryDairy,
		CategoryMeatFish, CategoryPreparedFood, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseReason accepts only exact members of the reason set.
func ParseReason(s string) (Reason, error) {
	r := Reason(strings.TrimSpace(s))
	if !r.Valid() {
		return "", invalid("reason", fmt.Errorf("%w: %q", ErrInvalidReason, s))
	}
	return r, nil
}

func (r Reason) Valid() bool {
	switch r {
	case ReasonSpoiled, ReasonOvercooked, ReasonExcess, ReasonDisliked, ReasonOther:
		return true
	}
	return false
}

func (r Reason) String() string { return string(r) }

// Label is the human description shown in forms.
func (r Reason) Label() string {
	switch r {
	case ReasonSpoiled:
		return "Spoiled/Expired"
	case ReasonExcess:
		return "Excess Preparation"
	case ReasonDisliked:
		return "Taste/Disliked"
	}
	return string(r)
}

func (d EntryDraft) Validate() error {
	if len(strings.TrimSpace(d.FoodItem)) == 0 {
		return invalid("foodItem", ErrEmptyFoodItem)
	}
	if len(d.FoodItem) > MaxFoodItemLength {
		return invalid("foodItem", fmt.Errorf("%w (max %d characters)", ErrFieldTooLong, MaxFoodItemLength))
	}
	if !d.Category.Valid() {
		return invalid("category", fmt.Errorf("%w: %q", ErrInvalidCategory, d.Category))
	}
	if err := d.Quantity.Validate(); err != nil {
		return invalid("quantity", err)
	}
	if !d.Reason.Valid() {
		return invalid("reason", fmt.Errorf("%w: %q", ErrInvalidReason, d.Reason))
	}
	if len(d.Notes) > MaxNotesLength {
		return invalid("notes", fmt.Errorf("%w (max %d characters)", ErrFieldTooLong, MaxNotesLength))
	}
	return nil
}

// Normalize trims free-text fields.
func (d EntryDraft) Normalize() EntryDraft {
	d.FoodItem = strings.TrimSpace(d.FoodItem)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// Apply replaces every writable field of e with the draft's values.
func (e WasteEntry) Apply(d EntryDraft) WasteEntry {
	e.FoodItem = d.FoodItem
	e.Category = d.Category
	e.Quantity = d.Quantity
	e.Reason = d.Reason
	e.Notes = d.Notes
	return e
}

// Draft extracts the writable fields of e.
func (e WasteEntry) Draft() EntryDraft {
	return EntryDraft{
		FoodItem: e.FoodItem,
		Category: e.Category,
		Quantity: e.Quantity,
		Reason:   e.Reason,
		Notes:    e.Notes,
	}
}
