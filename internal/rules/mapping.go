package rules

import (
	"strings"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/normalize"
)

// Alarm status values of the PHA-Pro import.
const (
	StatusAlarm = "Alarm"
	StatusEvent = "Event"
	StatusNone  = "None"
)

// SeverityNone is the severity of alarms with no recorded consequence.
const SeverityNone = "(N)"

type priorityCode struct {
	code   string
	status string
}

var priorityTable = map[string]priorityCode{
	"urgent":   {"U", StatusAlarm},
	"critical": {"C", StatusAlarm},
	"high":     {"H", StatusAlarm},
	"medium":   {"M", StatusAlarm},
	"low":      {"L", StatusAlarm},
	"journal":  {"J", StatusEvent},
	"none":     {"N", StatusNone},
}

// MapPriority maps a DCS priority name to a PHA-Pro priority code and alarm status.
// A journal alarm whose DisabledValue is FALSE gets the code "Jo".
func MapPriority(priorityName, disabledFlag string) (code, status string) {
	pc, ok := priorityTable[strings.ToLower(strings.TrimSpace(priorityName))]
	if !ok {
		pc = priorityTable["none"]
	}
	if pc.code == "J" && strings.EqualFold(strings.TrimSpace(disabledFlag), "FALSE") {
		return "Jo", pc.status
	}
	return pc.code, pc.status
}

var reversePriorityTable = map[string]string{
	"U": "Urgent", "URGENT": "Urgent",
	"C": "Critical", "CRITICAL": "Critical",
	"H": "High", "HIGH": "High",
	"M": "Medium", "MEDIUM": "Medium",
	"L": "Low", "LOW": "Low",
	"J": "Journal", "JO": "Journal", "JOURNAL": "Journal",
	"N": "None", "NONE": "None",
	"NA": "NOACTION",
	"E":  "EMERGNCY",
}

// ReversePriority maps a PHA-Pro priority code back to the DCS priority name.
// ok is false for blank input. Not-applicable tokens map to "~"; unknown codes pass through.
func ReversePriority(code string) (name string, ok bool) {
	c := strings.TrimSpace(code)
	if c == "" {
		return "", false
	}
	if normalize.IsNA(c) {
		return normalize.Tilde, true
	}
	if n, found := reversePriorityTable[strings.ToUpper(c)]; found {
		return n, true
	}
	return c, true
}

var severityWords = []struct {
	word   string
	letter string
}{
	{"CATASTROPHIC", "A"},
	{"MAJOR", "B"},
	{"MODERATE", "C"},
	{"MINOR", "D"},
	{"INSIGNIFICANT", "E"},
}

// MapSeverity maps consequence text to a severity letter A-E, or "(N)".
func MapSeverity(consequence string) string {
	c := strings.ToUpper(strings.TrimSpace(consequence))
	if normalize.IsPlaceholder(c) {
		return SeverityNone
	}
	switch c {
	case "A", "B", "C", "D", "E":
		return c
	}
	for _, sw := range severityWords {
		if strings.Contains(c, sw.word) || strings.Contains(sw.word, c) {
			return sw.letter
		}
	}
	return SeverityNone
}

var discreteTokens = []string{
	"controlfail", "st0", "st1", "st2", "st3", "unreasonable", "bad pv", "off normal",
	"command disagree", "command fail", "cnferr", "chofst", "offnrm", "bad control",
	"override interlock", "safety interlock", "safety override", "uncommanded",
	"c1 -", "c2 -", "c3 -", "c4 -", "c5 -", "c6 -", "c7 -", "c8 -", "c9 -", "c10 -", "c11 -", "c12 -",
	"flagoffnorm", "devbadpv", "devcmddis", "devuncevt", "devcmdfail",
	"daqpvhi", "daqpvhihi", "daqpvlow", "daqpvlolo", "daqrocneg", "daqrocpos", "regbadctl",
}

// IsDiscrete reports whether an alarm type is a state alarm with no numeric limit.
func IsDiscrete(alarmType string) bool {
	at := strings.ToLower(alarmType)
	for _, tok := range discreteTokens {
		if strings.Contains(at, tok) {
			return true
		}
	}
	return false
}

// IsSignificantChange reports whether an alarm type is a "significant change" alarm, which has no limit.
func IsSignificantChange(alarmType string) bool {
	return strings.Contains(strings.ToLower(alarmType), "significant change")
}

// EnableStatus maps the DCS DisabledValue column to the PHA-Pro individual enable status.
// The column holds TRUE for an enabled alarm in these exports.
func EnableStatus(flag normalize.Opt) string {
	v, ok := flag.Get()
	if !ok {
		return normalize.NotApplicable
	}
	switch strings.ToUpper(v) {
	case "TRUE":
		return "Enabled"
	case "FALSE":
		return "Disabled"
	}
	return normalize.NotApplicable
}

// EnableFlag maps a PHA-Pro enable status back to the DCS DisabledValue column in the
// profile's capitalization. ok is false when the status is not recognized and the
// original value must be kept.
func EnableFlag(enableStatus, enableCase string) (string, bool) {
	var enabled bool
	switch strings.ToUpper(strings.TrimSpace(enableStatus)) {
	case "TRUE", "ENABLED", "1":
		enabled = true
	case "FALSE", "DISABLED", "0":
		enabled = false
	default:
		return "", false
	}
	switch {
	case enableCase == config.EnableCaseTitle && enabled:
		return "True", true
	case enableCase == config.EnableCaseTitle:
		return "False", true
	case enabled:
		return "TRUE", true
	default:
		return "FALSE", true
	}
}

// NormalizeConsequence maps a PHA-Pro max severity back to the DCS consequence field.
// ok is false for blank input, which keeps the original value.
func NormalizeConsequence(severity string) (string, bool) {
	s := strings.TrimSpace(severity)
	if s == "" {
		return "", false
	}
	switch strings.ToUpper(s) {
	case "NONE", "(NONE)", "(N)", "N":
		return "(None)", true
	}
	return s, true
}
