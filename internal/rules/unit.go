// Package rules holds the pure derivation functions that map raw DCS values to PHA-Pro codes.
package rules

import (
	"regexp"
	"strings"

	"alarm-bridge/internal/config"
)

// UnitSentinel is returned when no unit can be derived.
const UnitSentinel = "00"

var unitSegmentRegex = regexp.MustCompile(`(?i)/U(?:nit)?\s*(\d+)/`)

// ExtractUnit derives a unit code from a tag name and asset path.
// The fixed method has no derivation and yields UnitSentinel; callers use the profile value.
func ExtractUnit(tagName, assetPath, method string, digitCount int) string {
	switch method {
	case config.UnitMethodTagPrefix:
		return unitFromTagPrefix(tagName, digitCount)
	case config.UnitMethodAssetParent:
		parent, _ := unitFromAsset(assetPath)
		return parent
	case config.UnitMethodAssetChild:
		_, child := unitFromAsset(assetPath)
		return child
	case config.UnitMethodBoth:
		prefix := unitFromTagPrefix(tagName, digitCount)
		parent, _ := unitFromAsset(assetPath)
		if prefix != UnitSentinel && parent != UnitSentinel && strings.Contains(parent, prefix) {
			return prefix
		}
		return UnitSentinel
	default:
		return UnitSentinel
	}
}

// AssetUnitNumber returns the digits of the first /U<n>/ or /Unit<n>/ segment of an asset path,
// or "" when there is none.
func AssetUnitNumber(assetPath string) string {
	m := unitSegmentRegex.FindStringSubmatch(assetPath)
	if m == nil {
		return ""
	}
	return m[1]
}

// unitFromTagPrefix collects up to digitCount leading digits, skipping any non-digit
// characters before the first digit.
func unitFromTagPrefix(tagName string, digitCount int) string {
	var b strings.Builder
	for _, r := range tagName {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() >= digitCount {
				break
			}
		} else if b.Len() > 0 {
			break
		}
	}
	if b.Len() == 0 {
		return UnitSentinel
	}
	return b.String()
}

// unitFromAsset returns the first and last path segments after the /U<n>/ segment.
func unitFromAsset(assetPath string) (parent, child string) {
	loc := unitSegmentRegex.FindStringIndex(assetPath)
	if loc == nil {
		return UnitSentinel, UnitSentinel
	}
	var segments []string
	for _, s := range strings.Split(assetPath[loc[1]:], "/") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return UnitSentinel, UnitSentinel
	}
	return segments[0], segments[len(segments)-1]
}

// UnitMatches reports whether unit is selected. Matching is exact or substring containment in
// either direction, so short selections such as "1" also match "17".
func UnitMatches(unit string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if unit == "" {
		return false
	}
	for _, s := range selected {
		if s == "" {
			continue
		}
		if unit == s || strings.Contains(unit, s) || strings.Contains(s, unit) {
			return true
		}
	}
	return false
}
