// Package model holds the record types shared by the readers, rules and transforms.
package model

import "alarm-bridge/internal/normalize"

// Sub-schema discriminators of a multi-schema DCS export.
const (
	RowMarker         = "_Variable"
	SchemaDCSVariable = "_DCSVariable"
	SchemaDCS         = "_DCS"
	SchemaParameter   = "_Parameter"
	SchemaNotes       = "_Notes"
)

// DCSRowWidth is the field count of a DynAMo import row.
const DCSRowWidth = 42

// Field positions of a _Parameter row.
const (
	ParamMode            = 3
	ParamAlarmType       = 5
	ParamAlarmName       = 6
	ParamValue           = 7
	ParamEnforcement     = 8
	ParamPriority        = 10
	ParamPriorityEnf     = 11
	ParamConsequence     = 12
	ParamTimeToRespond   = 13
	ParamPurpose         = 16
	ParamConsequenceText = 17
	ParamBoardOperator   = 18
	ParamFieldOperator   = 19
	ParamSupportingNotes = 20
	ParamDisabled        = 25
	ParamOnDelay         = 31
	ParamOffDelay        = 34
	ParamDeadband        = 37
	ParamDeadbandUnit    = 40
)

// VariableRow is the _DCSVariable sub-table entry of a tag.
type VariableRow struct {
	AssetPath string
	PointType string
}

// DCSRow is the _DCS sub-table entry of a tag.
type DCSRow struct {
	EngUnits    string
	PointType   string
	RangeHigh   string
	RangeLow    string
	Description string
	Unit        string
}

// NotesRow is the _Notes sub-table entry of a tag.
type NotesRow struct {
	DocRef string
}

// AlarmParameter is one alarm definition on a tag, in one mode.
type AlarmParameter struct {
	Mode            string
	AlarmType       normalize.Opt
	Limit           normalize.Opt
	Priority        string
	Consequence     string
	TimeToRespond   normalize.Opt
	Purpose         normalize.Opt
	ConsequenceText normalize.Opt
	BoardOperator   normalize.Opt
	FieldOperator   normalize.Opt
	SupportingNotes normalize.Opt
	Disabled        normalize.Opt
	OnDelay         normalize.Opt
	OffDelay        normalize.Opt
	Deadband        normalize.Opt
	DeadbandUnit    normalize.Opt
}

// Dataset is a parsed multi-schema DCS export. Maps are keyed by tag name.
type Dataset struct {
	// Tags lists tag names in first-seen _DCSVariable order.
	Tags       []string
	Variables  map[string]VariableRow
	DCS        map[string]DCSRow
	Parameters map[string][]AlarmParameter
	Notes      map[string]NotesRow
	// ParameterRows holds every _Parameter record verbatim, in file order; it is the reverse merge base.
	ParameterRows [][]string
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Variables:  make(map[string]VariableRow),
		DCS:        make(map[string]DCSRow),
		Parameters: make(map[string][]AlarmParameter),
		Notes:      make(map[string]NotesRow),
	}
}

// TagRecord is one tag joined across the sub-tables, ready for output.
type TagRecord struct {
	Name        string
	AssetPath   string
	PointType   string
	Description normalize.Opt
	EngUnits    normalize.Opt
	RangeMin    string
	RangeMax    string
	PIDRef      string
	Unit        string
	Alarms      []AlarmParameter
}

// WideAlarm is one suffix-coded alarm of a wide (ABB) workbook row.
type WideAlarm struct {
	Suffix    string
	AlarmType string
	Enabled   int
	Level     float64
	Severity  int
}

// WideTag is one row of a wide (ABB) workbook.
type WideTag struct {
	Name        string
	Description string
	Alarms      []WideAlarm
}

// ChangeEntry is one rationalized decision from a PHA-Pro export.
type ChangeEntry struct {
	Unit                  string
	TagName               string
	AlarmType             string
	TagSource             string
	NewLimit              string
	NewPriority           string
	MaxSeverity           string
	TimeToRespond         string
	Causes                string
	Consequences          string
	InsideActions         string
	OutsideActions        string
	NewEnableStatus       string
	AlarmStatus           string
	RationalizationStatus string
}

// AlarmKey identifies an alarm across formats.
type AlarmKey struct {
	Tag       string
	AlarmType string
}

// Table is an ordered output table. Header is empty for headerless formats.
type Table struct {
	Header []string
	Rows   [][]string
}

// Stats are the counters of one transform run.
type Stats struct {
	TagsProcessed   int
	AlarmsProcessed int
	Units           []string
	SkippedModes    int
	Filtered        int
	Updated         int
	NotFound        int
}
