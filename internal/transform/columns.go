package transform

import (
	"strings"

	"alarm-bridge/internal/config"
)

// field is a logical PHA-Pro export column.
type field int

const (
	fieldUnit field = iota
	fieldTagName
	fieldTagSource
	fieldAlarmType
	fieldNewPriority
	fieldNewLimit
	fieldAlarmStatus
	fieldCauses
	fieldConsequences
	fieldInsideActions
	fieldOutsideActions
	fieldMaxSeverity
	fieldTTR
	fieldNewEnable
	fieldRationalizationStatus
	fieldNewDescription
	fieldNewSeverity
	fieldAlarmComment
)

// columnDef names a logical field, its accepted header spellings in priority order, and
// why it is needed. The first alias is the name reported when the column is missing.
type columnDef struct {
	field    field
	aliases  []string
	purpose  string
	required bool
}

// reverseColumns are the columns read from a PHA-Pro export for the merge and the change report.
var reverseColumns = []columnDef{
	{fieldTagName, []string{colTagName, colNewTagName, colStartingTagName}, "Tag identifier - needed to map back to DynAMo", true},
	{fieldTagSource, []string{colTagSource}, "Determines enforcement (M vs R for Safety Manager)", true},
	{fieldAlarmType, []string{colAlarmType, colNewAlarmType, colStartingAlarmType}, "Required to identify which alarm parameter to update", true},
	{fieldNewPriority, []string{colNewPriorityShort, colNewPriority}, "Maps to DynAMo priorityValue", true},
	{fieldNewLimit, []string{colNewLimit}, "Maps to DynAMo value field for analog alarms", true},
	{fieldAlarmStatus, []string{colAlarmStatus}, "Determines consequence and disabled state", true},
	{fieldCauses, []string{colCauses}, "Maps to DynAMo Purpose of Alarm", true},
	{fieldConsequences, []string{colConsequences}, "Maps to DynAMo Consequence of No Action", true},
	{fieldInsideActions, []string{colInsideActions}, "Maps to DynAMo Board Operator", true},
	{fieldOutsideActions, []string{colOutsideActions}, "Maps to DynAMo Field Operator", true},
	{fieldMaxSeverity, []string{colMaxSeverity}, "Maps to DynAMo consequence field", true},
	{fieldTTR, []string{colTTRRange, colAllowableTTR}, "Maps to DynAMo TimeToRespond", true},
	{fieldNewEnable, []string{colNewAlarmEnable, colNewEnableStatus}, "Maps to DynAMo DisabledValue (TRUE/FALSE)", true},
	{fieldUnit, []string{colUnit}, "Groups alarms in the change report", false},
	{fieldRationalizationStatus, []string{colRationalizationStatus}, "Rationalization progress", false},
}

// abbReturnColumns are the columns read from a PHA-Pro ABB export for the 8-column return.
var abbReturnColumns = []columnDef{
	{fieldTagName, []string{colNewTagName, colStartingTagName, colTagName}, "Tag identifier for the ABB return", true},
	{fieldAlarmType, []string{colNewAlarmType, colStartingAlarmType, colAlarmType}, "Alarm suffix identifier for the ABB return", true},
	{fieldNewDescription, []string{colNewTagDescription, colOldTagDescription}, "ABB tag description", false},
	{fieldNewEnable, []string{colNewEnableStatus, colNewAlarmEnable}, "ABB alarm enable flag", false},
	{fieldNewLimit, []string{colNewLimit}, "ABB alarm level", false},
	{fieldNewPriority, []string{colNewPriority, colNewPriorityShort}, "ABB alarm priority", false},
	{fieldNewSeverity, []string{colNewSeverity}, "ABB alarm severity", false},
	{fieldAlarmComment, []string{colAlarmComment}, "ABB consolidated notes", false},
}

// reverseColumnsFor returns the reverse columns for an output schema. A variant whose export
// header spells a column differently reports its own spelling first when the column is missing.
func reverseColumnsFor(schema string) []columnDef {
	defs := make([]columnDef, len(reverseColumns))
	copy(defs, reverseColumns)
	if schema != config.SchemaVariantA {
		return defs
	}
	for i := range defs {
		if defs[i].field == fieldTTR {
			defs[i].aliases = []string{colAllowableTTR, colTTRRange}
		}
	}
	return defs
}

// ReverseRequiredColumns lists the required reverse columns of an output schema with their
// purposes, for help output.
func ReverseRequiredColumns(schema string) []MissingColumn {
	defs := reverseColumnsFor(schema)
	out := make([]MissingColumn, 0, len(defs))
	for _, c := range defs {
		if c.required {
			out = append(out, MissingColumn{Name: c.aliases[0], Purpose: c.purpose})
		}
	}
	return out
}

// columnMap is a header resolved to cell positions by logical field.
type columnMap map[field]int

// resolveColumns resolves every column against a header. All missing required columns are
// reported together.
func resolveColumns(header []string, defs []columnDef) (columnMap, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	cm := make(columnMap, len(defs))
	var missing []MissingColumn
	for _, cs := range defs {
		found := false
		for _, alias := range cs.aliases {
			if i, ok := index[alias]; ok {
				cm[cs.field] = i
				found = true
				break
			}
		}
		if !found && cs.required {
			missing = append(missing, MissingColumn{Name: cs.aliases[0], Purpose: cs.purpose})
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return cm, nil
}

// get returns the trimmed cell of f, or "" when the column is absent or the row is short.
func (cm columnMap) get(row []string, f field) string {
	i, ok := cm[f]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
