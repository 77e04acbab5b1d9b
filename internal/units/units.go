/**
 * @description
 * Size-string normalizer.
 * Turns free-text package sizes like "16 oz", "1/2 gal" or "2 lbs" into a
 * quantity in ounces so prices can be compared across products.
 */

package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnparseable is returned for size strings that cannot be normalized.
// Callers skip the record; a bad size never aborts a batch.
var ErrUnparseable = errors.New("unparseable size")

// factors maps lower-cased unit tokens to their ounce multiplier.
// Units not listed here (e.g. "ct", "each") pass through at factor 1 —
// the lenient fallback is load-bearing: downstream price-per-unit consumers
// rely on count-style sizes not raising.
var factors = map[string]float64{
	"lb": 16, "lbs": 16, "pound": 16, "pounds": 16,
	"gal": 128, "gallon": 128,
	"qt": 32, "quart": 32,
	"pt": 16, "pint": 16,
	"l": 33.8, "liter": 33.8, "liters": 33.8,
}

// Normalize parses a "<amount> <unit>" size string and returns the amount in
// ounces. The amount may be an integer, a decimal, or a simple fraction ("1/2").
func Normalize(size string) (float64, error) {
	parts := strings.Fields(size)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, size)
	}

	amount, err := parseAmount(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUnparseable, size, err)
	}
	if amount == 0 {
		// A zero amount would divide price-per-unit by zero; reject it here.
		return 0, fmt.Errorf("%w: %q: zero amount", ErrUnparseable, size)
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	if factor, ok := factors[unit]; ok {
		return amount * factor, nil
	}
	return amount, nil
}

// PricePerUnit divides price by the normalized size amount, rounded to
// 4 decimal digits.
func PricePerUnit(price float64, size string) (float64, error) {
	amount, err := Normalize(size)
	if err != nil {
		return 0, err
	}
	return Round(price/amount, 4), nil
}

// Round rounds v to the given number of decimal digits
func Round(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}

// parseAmount parses a decimal or "a/b" fraction
func parseAmount(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}
