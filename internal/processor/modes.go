package processor

import "strings"

// DefaultMode is the operating mode kept when no modes are selected.
const DefaultMode = "NORMAL"

// EmptyModeToken selects parameters whose mode cell is blank.
const EmptyModeToken = "(empty)"

// ModeSet decides which parameter modes survive filtering. Comparison is case-insensitive.
type ModeSet struct {
	modes map[string]bool
}

// NewModeSet builds the valid mode set. With no selection it is NORMAL, plus the empty
// mode when emptyModeValid is set. An empty string or EmptyModeToken in selected
// selects the empty mode.
func NewModeSet(selected []string, emptyModeValid bool) ModeSet {
	ms := ModeSet{modes: make(map[string]bool)}
	if len(selected) == 0 {
		ms.modes[strings.ToUpper(DefaultMode)] = true
		if emptyModeValid {
			ms.modes[""] = true
		}
		return ms
	}
	for _, m := range selected {
		m = strings.TrimSpace(m)
		if strings.EqualFold(m, EmptyModeToken) {
			m = ""
		}
		ms.modes[strings.ToUpper(m)] = true
	}
	return ms
}

// Allows reports whether a parameter in mode survives.
func (ms ModeSet) Allows(mode string) bool {
	return ms.modes[strings.ToUpper(strings.TrimSpace(mode))]
}

// Modes returns the set members for logging, with the empty mode shown as EmptyModeToken.
func (ms ModeSet) Modes() []string {
	out := make([]string, 0, len(ms.modes))
	for m := range ms.modes {
		if m == "" {
			m = EmptyModeToken
		}
		out = append(out, m)
	}
	return out
}
