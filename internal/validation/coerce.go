package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Numeric text longer than maxNumberLength, or whose decimal exponent
// exceeds maxExponent in magnitude, is not a number. Rounding or printing
// such values would expand them to 10^exponent digits.
const (
	maxNumberLength = 64
	maxExponent     = 64
)

var (
	leadingDecimal = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)
	leadingInt     = regexp.MustCompile(`^[+-]?[0-9]+`)
	prefixDotExp   = strings.NewReplacer(".e", "e", ".E", "E")
)

// ParseLeadingDecimal parses the longest numeric prefix of s after leading
// whitespace, so "12.5abc" yields 12.5. It reports false when s has no
// numeric prefix.
func ParseLeadingDecimal(s string) (decimal.Decimal, bool) {
	prefix := leadingDecimal.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if prefix == "" || len(prefix) > maxNumberLength {
		return decimal.Zero, false
	}
	// "5." and "5.e2" are valid prefixes with an empty fraction.
	prefix = strings.TrimPrefix(prefix, "+")
	prefix = strings.TrimSuffix(prefixDotExp.Replace(prefix), ".")
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// ParseLeadingInt parses the longest integer prefix of s after leading
// whitespace, so "7.9" yields 7. Values outside the 32-bit range are
// rejected.
func ParseLeadingInt(s string) (int, bool) {
	prefix := leadingInt.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(prefix, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// NumberToInt truncates the value of a JSON number toward zero, so 1.5e1
// yields 15. Values outside the 32-bit range are rejected.
func NumberToInt(s string) (int, bool) {
	d, ok := ParseLeadingDecimal(s)
	if !ok {
		return 0, false
	}
	n := d.Truncate(0)
	if n.LessThan(minInt32) || n.GreaterThan(maxInt32) {
		return 0, false
	}
	return int(n.IntPart()), true
}

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

// textOf returns the text form a payload value is coerced from. Only JSON
// strings and numbers have one.
func textOf(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}
