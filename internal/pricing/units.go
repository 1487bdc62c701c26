package pricing

import (
	"math"
	"strconv"
	"strings"
)

// minorPerMajor is the number of cents in one currency unit.
const minorPerMajor = 100

// MaxAmount is the largest decimal price accepted on a form.
const MaxAmount = 1_000_000_000

var currencyPrefixes = []string{"USD", "US", "ZIG", "ZWG"}

// ToMinorUnits converts a decimal amount as typed on the form into integer cents,
// rounding half away from zero. NaN, infinities and amounts whose cents do not
// fit in an int64 convert to 0.
func ToMinorUnits(amount float64) int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	cents := math.Round(amount * minorPerMajor)
	if cents >= math.MaxInt64 || cents < math.MinInt64 {
		return 0
	}
	return int64(cents)
}

// ParseMinorUnits parses a user-typed decimal string into cents. Anything that does
// not parse as a number converts to 0.
func ParseMinorUnits(raw string) int64 {
	amount, ok := ParseAmount(raw)
	if !ok {
		return 0
	}
	return ToMinorUnits(amount)
}

// ToDecimal converts cents into a decimal amount with two decimal places.
func ToDecimal(cents int64) float64 {
	return Round2(float64(cents) / minorPerMajor)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*minorPerMajor) / minorPerMajor
}

// ParseAmount reads a loosely formatted decimal such as "$1,250.50" or " 9 ".
// The boolean is false when the input is empty or not numeric.
func ParseAmount(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	cleaned = strings.ToUpper(cleaned)
	for _, prefix := range currencyPrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimPrefix(cleaned, prefix)
			break
		}
	}
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
