package transform

import (
	"strings"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/util"
)

// Report sheet names and fixed cells.
const (
	ReportSheetName  = "Change Report"
	SummarySheetName = "Summary"
	noChangesText    = "No changes detected"
	changedMark      = "✓"
	reportTextLimit  = 100
)

// trackedField is a DCS field compared by the change report.
type trackedField struct {
	label    string
	index    int
	longText bool
}

var trackedFields = []trackedField{
	{"Limit", model.ParamValue, false},
	{"Priority", model.ParamPriority, false},
	{"Severity", model.ParamConsequence, false},
	{"TTR", model.ParamTimeToRespond, false},
	{"Purpose", model.ParamPurpose, true},
	{"Consequence", model.ParamConsequenceText, true},
	{"Board Op", model.ParamBoardOperator, true},
	{"Field Op", model.ParamFieldOperator, true},
	{"Enabled", model.ParamDisabled, false},
}

// FieldChange is the before and after value of one tracked field.
type FieldChange struct {
	Field    string
	Original string
	New      string
	Changed  bool
}

// ChangeRecord is one alarm with at least one changed field.
type ChangeRecord struct {
	Unit      string
	TagName   string
	AlarmType string
	TagSource string
	Fields    []FieldChange
}

// ChangeReport lists the alarms a reverse merge would change.
type ChangeReport struct {
	Records []ChangeRecord
}

// BuildChangeReport computes the changes a Reverse call with the same arguments would write.
func BuildChangeReport(records [][]string, ds *model.Dataset, p *config.ClientProfile, selectedModes []string) (*ChangeReport, error) {
	cs, err := ParseChangeSet(records, p.OutputSchema)
	if err != nil {
		return nil, err
	}
	var stats model.Stats
	base, err := mergeBase(ds, p, selectedModes, &stats)
	if err != nil {
		return nil, err
	}

	report := &ChangeReport{}
	for _, pr := range base {
		e, ok := cs.Lookup(pr.key)
		if !ok {
			continue
		}
		merged := importRow(pr.row)
		applyChange(merged, pr.key.AlarmType, e, p.EnableValueCase)

		rec := ChangeRecord{Unit: e.Unit, TagName: pr.key.Tag, AlarmType: pr.key.AlarmType, TagSource: e.TagSource}
		anyChanged := false
		for _, tf := range trackedFields {
			orig := cellAt(pr.row, tf.index)
			next := strings.TrimSpace(merged[tf.index])
			fc := FieldChange{Field: tf.label, Original: orig, New: next, Changed: orig != next}
			if tf.longText {
				fc.Original = util.Truncate(orig, reportTextLimit)
				fc.New = util.Truncate(next, reportTextLimit)
			}
			anyChanged = anyChanged || fc.Changed
			rec.Fields = append(rec.Fields, fc)
		}
		if anyChanged {
			report.Records = append(report.Records, rec)
		}
	}
	logging.Logf(logging.Info, "Change report: %d of %d alarms changed", len(report.Records), len(base))
	return report, nil
}

// FieldCounts returns how many records changed each tracked field, in report column order.
// Fields with no changes are omitted.
func (r *ChangeReport) FieldCounts() []FieldChangeCount {
	counts := make([]FieldChangeCount, 0, len(trackedFields))
	for i, tf := range trackedFields {
		n := 0
		for _, rec := range r.Records {
			if rec.Fields[i].Changed {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, FieldChangeCount{Field: tf.label, Count: n})
		}
	}
	return counts
}

// FieldChangeCount is a summary tally.
type FieldChangeCount struct {
	Field string
	Count int
}

// DetailRows returns the Change Report sheet cells, header first.
func (r *ChangeReport) DetailRows() [][]interface{} {
	if len(r.Records) == 0 {
		return [][]interface{}{{noChangesText}}
	}
	header := []interface{}{"Unit", "Tag Name", "Alarm Type", "Tag Source"}
	for _, tf := range trackedFields {
		header = append(header, "Original "+tf.label, "New "+tf.label, tf.label+" Changed")
	}
	rows := [][]interface{}{header}
	for _, rec := range r.Records {
		row := []interface{}{rec.Unit, rec.TagName, rec.AlarmType, rec.TagSource}
		for _, fc := range rec.Fields {
			mark := ""
			if fc.Changed {
				mark = changedMark
			}
			row = append(row, fc.Original, fc.New, mark)
		}
		rows = append(rows, row)
	}
	return rows
}

// SummaryRows returns the Summary sheet cells. Row 2 is left blank, as is row 4.
func (r *ChangeReport) SummaryRows() [][]interface{} {
	rows := [][]interface{}{
		{"Change Report Summary"},
		{},
		{"Total Alarms with Changes:", len(r.Records)},
	}
	if len(r.Records) == 0 {
		return rows
	}
	rows = append(rows, []interface{}{}, []interface{}{"Changes by Field:"})
	for _, c := range r.FieldCounts() {
		rows = append(rows, []interface{}{c.Field, c.Count})
	}
	return rows
}
