// Package transform converts between DCS alarm exports and PHA-Pro MADB tables.
package transform

import "alarm-bridge/internal/config"

// PHA-Pro column names shared by the schema variants and the reverse column lookup.
const (
	colUnit                  = "Unit"
	colTagName               = "Tag Name"
	colOldTagDescription     = "Old Tag Description"
	colNewTagDescription     = "New Tag Description"
	colPID                   = "P&ID"
	colRangeMin              = "Range Min"
	colRangeMax              = "Range Max"
	colEngUnits              = "Engineering Units"
	colTagSource             = "Tag Source"
	colTagComment            = "Rationalization (Tag) Comment"
	colOldTagEnable          = "Old Tag Enable Status"
	colNewTagEnable          = "New Tag Enable Status"
	colAlarmType             = "Alarm Type"
	colOldAlarmEnable        = "Old Individual Alarm Enable Status"
	colNewAlarmEnable        = "New Individual Alarm Enable Status"
	colOldPriority           = "Old (BPCS) Priority"
	colNewPriority           = "New (BPCS) Priority"
	colOldLimit              = "Old Limit"
	colNewLimit              = "New Limit"
	colOldDeadband           = "Old Deadband"
	colNewDeadband           = "New Deadband"
	colOldDeadbandUnits      = "Old Deadband Units"
	colNewDeadbandUnits      = "New Deadband Units"
	colOldOnDelay            = "Old On-Delay Time"
	colNewOnDelay            = "New On-Delay Time"
	colOldOffDelay           = "Old Off-Delay Time"
	colNewOffDelay           = "New Off-Delay Time"
	colRationalizationStatus = "Rationalization Status"
	colAlarmStatus           = "Alarm Status"
	colAlarmComment          = "Rationalization (Alarm) Comment"
	colLimitOwner            = "Limit Owner"
	colHAZOPComment          = "Alarm HAZOP Comment"
	colSuppressionNotes      = "Alarm Suppression Notes"
	colAlarmClass            = "Alarm Class"
	colCauses                = "Cause(s)"
	colConsequences          = "Consequence(s)"
	colInsideActions         = "Inside Action(s)"
	colOutsideActions        = "Outside Action(s)"
	colHealthSafety          = "Health and Safety"
	colEnvironment           = "Environment"
	colFinancial             = "Financial"
	colReputation            = "Reputation"
	colPrivilege             = "Privilege to Operate"
	colMaxSeverity           = "Max Severity"
	colAllowableTTR          = "Allowable Time to Respond"
	colTTRRange              = "TTR Range"

	colStartingTagName   = "Starting Tag Name"
	colNewTagName        = "New Tag Name"
	colStartingAlarmType = "Starting Alarm Type"
	colNewAlarmType      = "New Alarm Type"
	colOldEnableStatus   = "Old Alarm Enable Status"
	colNewEnableStatus   = "New Alarm Enable Status"
	colOldSeverity       = "Old Alarm Severity"
	colNewSeverity       = "New Alarm Severity"
	colNewPriorityShort  = "New Priority"
)

// Fixed values written by the forward transforms.
const (
	tagEnabled             = "Enabled"
	rationalizationPending = "Not Started_x"
	defaultPID             = "UNKNOWN"
	defaultRangeMin        = "0"
	defaultRangeMax        = "1"
	abbTagComment          = "Tag Type = Analog Input"
)

var variantAHeaders = []string{
	colUnit, colTagName, colOldTagDescription, colNewTagDescription, colPID, colRangeMin, colRangeMax,
	colEngUnits, colTagSource, colTagComment, colOldTagEnable, colNewTagEnable, colAlarmType,
	colOldAlarmEnable, colNewAlarmEnable, colOldPriority, colNewPriority, colOldLimit, colNewLimit,
	colOldDeadband, colNewDeadband, colOldDeadbandUnits, colNewDeadbandUnits, colOldOnDelay, colNewOnDelay,
	colOldOffDelay, colNewOffDelay, colRationalizationStatus, colAlarmStatus, colAlarmComment,
	colLimitOwner, colHAZOPComment, colSuppressionNotes, colAlarmClass, colCauses, colConsequences,
	colInsideActions, colOutsideActions, colHealthSafety, colEnvironment, colFinancial, colReputation,
	colPrivilege, colMaxSeverity, colAllowableTTR,
}

var variantCHeaders = []string{
	colUnit, colStartingTagName, colNewTagName, colOldTagDescription, colNewTagDescription, colTagSource,
	colTagComment, colRangeMin, colRangeMax, colEngUnits, colStartingAlarmType, colNewAlarmType,
	colOldEnableStatus, colNewEnableStatus, colOldSeverity, colNewSeverity, colOldLimit, colNewLimit,
	colOldPriority, colNewPriority, colRationalizationStatus, colAlarmStatus, colAlarmComment,
}

// ABBReturnHeaders is the header of the 8-column ABB return file.
var ABBReturnHeaders = []string{
	"Tag Name", "New Tag Description", "New Alarm Type", "New Alarm Enable Status",
	"New Limit", "New Priority", "New Alarm Severity Level", "ABB Consolidated Notes",
}

// variantBHeaders drops the reputation and privilege columns and names the last column TTR Range.
var variantBHeaders = func() []string {
	out := make([]string, 0, len(variantAHeaders)-2)
	for _, h := range variantAHeaders {
		switch h {
		case colReputation, colPrivilege:
			continue
		case colAllowableTTR:
			h = colTTRRange
		}
		out = append(out, h)
	}
	return out
}()

// Headers returns a copy of the column header of a schema variant, or nil when unknown.
func Headers(variant string) []string {
	var h []string
	switch variant {
	case config.SchemaVariantA:
		h = variantAHeaders
	case config.SchemaVariantB:
		h = variantBHeaders
	case config.SchemaVariantC:
		h = variantCHeaders
	default:
		return nil
	}
	return append([]string(nil), h...)
}

// rowValues collects one output row by column name and projects it onto a header.
// Columns never set are blank.
type rowValues map[string]string

func (rv rowValues) set(value string, cols ...string) {
	for _, c := range cols {
		rv[c] = value
	}
}

func (rv rowValues) project(header []string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		row[i] = rv[h]
	}
	return row
}
