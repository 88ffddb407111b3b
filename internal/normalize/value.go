package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder spellings written by DCS exports and expected by DCS imports.
const (
	Tilde         = "~"
	Dashes        = "--------"
	NoLimit       = "-9999999"
	NotApplicable = "{n/a}"
)

var placeholders = map[string]bool{"": true, "~": true, "-": true, Dashes: true}

var naTokens = map[string]bool{"n/a": true, "(n/a)": true, "{n/a}": true, "#n/a": true}

// IsPlaceholder reports whether raw is one of the "no value" spellings.
func IsPlaceholder(raw string) bool {
	return placeholders[strings.TrimSpace(raw)]
}

// IsNA reports whether raw is an explicit not-applicable token in any casing.
func IsNA(raw string) bool {
	return naTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// Opt is a cell value that may be absent. Placeholder spellings collapse to absent
// when parsed, so callers never compare against "~" or "--------" themselves.
type Opt struct {
	val string
	ok  bool
}

// Some wraps a present value verbatim.
func Some(v string) Opt { return Opt{val: v, ok: true} }

// None is the absent value.
func None() Opt { return Opt{} }

// Parse trims raw and returns it, or absent for a placeholder.
func Parse(raw string) Opt {
	v := strings.TrimSpace(raw)
	if placeholders[v] {
		return Opt{}
	}
	return Opt{val: v, ok: true}
}

// ParseLimit is Parse that also treats not-applicable tokens and the -9999999 sentinel as absent.
func ParseLimit(raw string) Opt {
	o := Parse(raw)
	if !o.ok || IsNA(o.val) {
		return Opt{}
	}
	if f, ok := ParseFloat(o.val); ok && f == -9999999 {
		return Opt{}
	}
	return o
}

// Get returns the value and whether it is present.
func (o Opt) Get() (string, bool) { return o.val, o.ok }

// IsSet reports whether a value is present.
func (o Opt) IsSet() bool { return o.ok }

// Or returns the value, or def when absent.
func (o Opt) Or(def string) string {
	if o.ok {
		return o.val
	}
	return def
}

// String returns the value or "".
func (o Opt) String() string { return o.val }

// StripThousands removes every comma.
func StripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// StripNumericThousands removes commas only when the result is a number; otherwise s is returned as is.
func StripNumericThousands(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	cleaned := strings.TrimSpace(StripThousands(s))
	if _, ok := ParseFloat(cleaned); ok {
		return cleaned
	}
	return s
}

// ParseFloat parses a finite decimal number, ignoring surrounding space and thousands separators.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(StripThousands(s)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatFloat renders integral values without a decimal point and other values
// in shortest form without trailing zeros.
func FormatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatNumber reformats a numeric string with FormatFloat. ok is false when s is not a number.
func FormatNumber(s string) (string, bool) {
	f, ok := ParseFloat(s)
	if !ok {
		return s, false
	}
	return FormatFloat(f), true
}
