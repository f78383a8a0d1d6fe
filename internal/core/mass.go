// Package core provides mass parsing and handling utilities.
//
// Quantities are held as integer grams so that sums over any number of
// entries are exact and independent of input order.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// MinQuantityGrams is the smallest loggable quantity (0.1 kg).
const MinQuantityGrams = 100

type Mass struct {
	Grams int64
}

// maxGrams keeps kilogram conversions well inside float64's exact integer range.
const maxGrams = 1 << 50

func (m Mass) Validate() error {
	if m.Grams <= 0 {
		return ErrInvalidQuantity
	}
	if m.Grams < MinQuantityGrams {
		return ErrQuantityTooSmall
	}
	if m.Grams > maxGrams {
		return ErrInvalidQuantity
	}
	return nil
}

// Kilograms returns the mass in kilograms for display and wire output.
func (m Mass) Kilograms() float64 {
	return float64(m.Grams) / 1000.0
}

// ParseKilogramsToGrams converts a decimal kilogram string to exact grams.
//
// It accepts both dot (1.25) and comma (1,25) decimal separators. Digits
// past the third decimal must be zero: a gram is the finest unit stored, and
// the value is never rounded, so the minimum check in Mass.Validate sees
// exactly what the client sent.
//
// Examples:
//
//	ParseKilogramsToGrams("1.25")   -> 1250, nil
//	ParseKilogramsToGrams("0,1")    -> 100, nil
//	ParseKilogramsToGrams("0.1000") -> 100, nil
//	ParseKilogramsToGrams("0.0995") -> 0, ErrQuantityPrecision
func ParseKilogramsToGrams(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidQuantity
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidQuantity
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidQuantity
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return 0, ErrInvalidQuantity
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	if iv > maxGrams/1000 {
		return 0, ErrInvalidQuantity
	}
	if len(fracPart) > 3 {
		if strings.TrimRight(fracPart[3:], "0") != "" {
			return 0, ErrQuantityPrecision
		}
		fracPart = fracPart[:3]
	}
	var frac int64
	for i := 0; i < 3; i++ {
		frac *= 10
		if i < len(fracPart) {
			frac += int64(fracPart[i] - '0')
		}
	}
	grams := iv*1000 + frac
	if grams <= 0 {
		return 0, ErrInvalidQuantity
	}
	return grams, nil
}

// FormatKilograms renders grams as a kilogram string with two decimals.
func FormatKilograms(grams int64) string {
	return strconv.FormatFloat(float64(grams)/1000.0, 'f', 2, 64)
}
