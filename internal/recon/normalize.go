package recon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalisation primitives shared by every comparator.
//
// The project database and the wire decoder disagree on value encodings:
// booleans arrive as 0/1 integers on one side and true/false on the
// other, numbers are sometimes stored as strings, and "no reference" is
// variously null, absent, "", or the literal string "null". These rules
// are applied before any inequality is reported.

// truthy implements the boolean/int duality: 0, false, nil, "", "0" and
// "false" are all false; any other value is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s != "" && s != "0" && s != "false"
	default:
		n, ok := numeric(v)
		if ok {
			return n != 0
		}
		return true
	}
}

// numeric coerces a value to a float64. Strings are parsed; the second
// return reports whether the coercion succeeded.
func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// numericOrZero coerces a value to a number, falling back to 0 when the
// value does not parse. The fallback keeps "10" equal to 10; a genuinely
// malformed value still surfaces because difference messages render the
// raw value, not the parsed one.
func numericOrZero(v any) float64 {
	n, _ := numeric(v)
	return n
}

// refUnset reports whether an optional reference value means "no
// reference": nil, absent, the empty string, and the literal "null" are
// all equivalent to unset. Zero is deliberately NOT unset here; group 0
// is a valid reference in several domains.
func refUnset(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s == "" || s == "null"
	default:
		return false
	}
}

// refEqual compares two optional reference values: both unset is equal,
// one unset is not, and two set values compare numerically when both
// parse, falling back to trimmed string equality.
func refEqual(a, b any) bool {
	au, bu := refUnset(a), refUnset(b)
	if au || bu {
		return au == bu
	}
	an, aok := numeric(a)
	bn, bok := numeric(b)
	if aok && bok {
		return an == bn
	}
	return strings.TrimSpace(fmt.Sprint(a)) == strings.TrimSpace(fmt.Sprint(b))
}

// formatValue renders a value for a difference message. Integral floats
// print without a decimal point, unset references print as "null", and
// everything else prints in its natural form.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		if t == "" {
			return "null"
		}
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	default:
		if n, ok := numeric(v); ok {
			return formatNumber(n)
		}
		return fmt.Sprint(v)
	}
}

// formatNumber renders 10.0 as "10" and 10.5 as "10.5".
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// formatIntList renders an int slice as "[1 2 3]" for combined set and
// list difference messages.
func formatIntList(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
