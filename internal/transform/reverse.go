package transform

import (
	"strings"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"
	"alarm-bridge/internal/processor"
	"alarm-bridge/internal/rules"

	"github.com/rotisserie/eris"
)

// importMarker is the row marker of a DCS import row; the apostrophe keeps spreadsheet tools from
// treating the cell as a formula.
const importMarker = "'" + model.RowMarker

// Delay and deadband fields whose thousands separators are stripped on output.
var numericDelayFields = []int{model.ParamOnDelay, model.ParamOffDelay, model.ParamDeadband}

// parameterRow is an original _Parameter row with its merge key.
type parameterRow struct {
	key model.AlarmKey
	row []string
}

// Reverse merges a PHA-Pro export (header row first) into the original DCS parameter rows.
// Every surviving original row is emitted once; rows with a decision are updated and the rest
// pass through unchanged. The result has no header row.
func Reverse(records [][]string, ds *model.Dataset, p *config.ClientProfile, selectedModes []string) (*model.Table, model.Stats, error) {
	var stats model.Stats
	cs, err := ParseChangeSet(records, p.OutputSchema)
	if err != nil {
		return nil, stats, err
	}
	base, err := mergeBase(ds, p, selectedModes, &stats)
	if err != nil {
		return nil, stats, err
	}

	tags := make(map[string]bool)
	table := &model.Table{Rows: make([][]string, 0, len(base))}
	for _, pr := range base {
		out := importRow(pr.row)
		if e, ok := cs.Lookup(pr.key); ok {
			applyChange(out, pr.key.AlarmType, e, p.EnableValueCase)
			stats.Updated++
		} else {
			stats.NotFound++
		}
		if !tags[pr.key.Tag] {
			tags[pr.key.Tag] = true
			stats.TagsProcessed++
		}
		stats.AlarmsProcessed++
		table.Rows = append(table.Rows, out)
	}
	logging.Logf(logging.Info, "Reverse merge: %d rows (%d updated, %d not found), %d skipped by mode",
		len(table.Rows), stats.Updated, stats.NotFound, stats.SkippedModes)
	return table, stats, nil
}

// mergeBase selects the original parameter rows to emit: mode filter first, then rows with a
// blank alarm type are dropped, then the first row of each (tag, alarm type) wins.
func mergeBase(ds *model.Dataset, p *config.ClientProfile, selectedModes []string, stats *model.Stats) ([]parameterRow, error) {
	if ds == nil || len(ds.ParameterRows) == 0 {
		return nil, ErrSourceRequired
	}
	if p.ParserKind != config.ParserMultiSchemaCSV {
		return nil, eris.Wrapf(ErrWrongLayout, "profile '%s' reads %s exports", p.ID, p.ParserKind)
	}
	modes := processor.NewModeSet(selectedModes, p.EmptyModeIsValid)
	rows := make([]parameterRow, 0, len(ds.ParameterRows))
	for _, row := range ds.ParameterRows {
		if !modes.Allows(cellAt(row, model.ParamMode)) {
			stats.SkippedModes++
			continue
		}
		alarmType := cellAt(row, model.ParamAlarmType)
		if normalize.IsPlaceholder(alarmType) {
			continue
		}
		rows = append(rows, parameterRow{
			key: model.AlarmKey{Tag: cellAt(row, 1), AlarmType: alarmType},
			row: row,
		})
	}
	unique, dropped := processor.Dedup(rows, func(pr parameterRow) model.AlarmKey { return pr.key }, processor.DedupStrategyFirst)
	if dropped > 0 {
		logging.Logf(logging.Debug, "Dropped %d duplicate (tag, alarm type) rows from the original export", dropped)
	}
	return unique, nil
}

// importRow copies an original row into the fixed import shape with the import marker.
// Short rows are padded and fields past the import width are dropped.
func importRow(orig []string) []string {
	out := make([]string, model.DCSRowWidth)
	copy(out, orig[:min(len(orig), model.DCSRowWidth)])
	for _, i := range numericDelayFields {
		out[i] = normalize.StripNumericThousands(out[i])
	}
	out[0] = importMarker
	return out
}

// applyChange overwrites the rationalized fields of an import row.
func applyChange(row []string, alarmType string, e model.ChangeEntry, enableCase string) {
	enforcement := rules.EnforcementForSource(e.TagSource)

	row[model.ParamValue] = mergedValue(alarmType, e.NewLimit)
	if strings.TrimSpace(row[model.ParamAlarmName]) != "" {
		row[model.ParamEnforcement] = enforcement
	}
	if name, ok := rules.ReversePriority(e.NewPriority); ok {
		row[model.ParamPriority] = name
	}
	if strings.TrimSpace(row[model.ParamPriorityEnf]) != "" {
		row[model.ParamPriorityEnf] = enforcement
	}
	if c, ok := rules.NormalizeConsequence(e.MaxSeverity); ok {
		row[model.ParamConsequence] = c
	}
	if ttr := strings.TrimSpace(e.TimeToRespond); ttr != "" && ttr != normalize.Tilde {
		row[model.ParamTimeToRespond] = ttr
	}
	row[model.ParamPurpose] = mergedText(e.Causes)
	row[model.ParamConsequenceText] = mergedText(e.Consequences)
	row[model.ParamBoardOperator] = mergedText(e.InsideActions)
	row[model.ParamFieldOperator] = mergedText(e.OutsideActions)
	if flag, ok := rules.EnableFlag(e.NewEnableStatus, enableCase); ok {
		row[model.ParamDisabled] = flag
	}
}

// mergedValue derives the DCS value field from the new PHA-Pro limit.
func mergedValue(alarmType, newLimit string) string {
	switch {
	case rules.IsDiscrete(alarmType):
		return normalize.Tilde
	case rules.IsSignificantChange(alarmType):
		return normalize.Dashes
	}
	limit, ok := normalize.ParseLimit(newLimit).Get()
	if !ok {
		return normalize.Dashes
	}
	if s, isNum := normalize.FormatNumber(limit); isNum {
		return s
	}
	return limit
}

// mergedText repairs double-encoded text; a blank decision is written as "~".
func mergedText(v string) string {
	if strings.TrimSpace(v) == "" {
		return normalize.Tilde
	}
	return normalize.FixEncoding(v)
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
