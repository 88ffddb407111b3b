package transform

import (
	"strconv"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"
	"alarm-bridge/internal/processor"
	"alarm-bridge/internal/rules"

	"github.com/rotisserie/eris"
)

// Defaults of the ABB return when the PHA-Pro cell is blank.
const (
	abbDefaultEnable   = "0"
	abbDefaultPriority = "3"
	abbDefaultSeverity = "1"
	abbNotesPrefix     = "Cause:   Consequence:   Actions: "
	abbPointType       = "Analog Input"
)

// ForwardABB converts wide workbook tags into the 23-column PHA-Pro import. Every configured
// alarm suffix of every tag is emitted, enabled or not.
func ForwardABB(tags []model.WideTag, p *config.ClientProfile, filter *processor.AlarmFilter) (*model.Table, model.Stats, error) {
	var stats model.Stats
	if p.ParserKind != config.ParserWideExcel {
		return nil, stats, eris.Wrapf(ErrWrongLayout, "profile '%s' reads %s exports", p.ID, p.ParserKind)
	}
	filter, err := alarmFilter(p, filter)
	if err != nil {
		return nil, stats, err
	}
	header := Headers(config.SchemaVariantC)
	priority := strconv.Itoa(p.ABBPriorityDefault)
	unit := p.UnitValue

	table := &model.Table{Header: header}
	firstRow := true
	for _, tag := range tags {
		first := true
		for _, a := range tag.Alarms {
			if !filter.Keep(map[string]interface{}{
				"tag": tag.Name, "unit": unit, "mode": "", "alarmType": a.AlarmType, "priority": priority,
				"pointType": abbPointType, "source": p.DefaultSource, "discrete": false,
			}) {
				stats.Filtered++
				continue
			}
			rv := rowValues{}
			if firstRow {
				rv.set(unit, colUnit)
				firstRow = false
			}
			if first {
				rv.set(tag.Name, colStartingTagName, colNewTagName)
				rv.set(tag.Description, colOldTagDescription, colNewTagDescription)
				rv.set(p.DefaultSource, colTagSource)
				rv.set(abbTagComment, colTagComment)
				rv.set(normalize.NoLimit, colRangeMin, colRangeMax)
				stats.TagsProcessed++
				first = false
			}
			status := rules.StatusNone
			if a.Enabled == 1 {
				status = rules.StatusAlarm
			}
			rv.set(a.AlarmType, colStartingAlarmType, colNewAlarmType)
			rv.set(strconv.Itoa(a.Enabled), colOldEnableStatus, colNewEnableStatus)
			rv.set(strconv.Itoa(a.Severity), colOldSeverity, colNewSeverity)
			rv.set(normalize.FormatFloat(a.Level), colOldLimit, colNewLimit)
			rv.set(priority, colOldPriority, colNewPriority)
			rv.set(rationalizationPending, colRationalizationStatus)
			rv.set(status, colAlarmStatus)
			table.Rows = append(table.Rows, rv.project(header))
			stats.AlarmsProcessed++
		}
	}
	if unit != "" && stats.AlarmsProcessed > 0 {
		stats.Units = []string{unit}
	}
	logging.Logf(logging.Info, "ABB forward transform: %d tags, %d alarms, %d filtered", stats.TagsProcessed, stats.AlarmsProcessed, stats.Filtered)
	return table, stats, nil
}

// ABBReturn converts a rationalized PHA-Pro ABB export (header row first) into the 8-column
// ABB return table. Tag name and description appear on the first alarm row of each tag only.
func ABBReturn(records [][]string) (*model.Table, model.Stats, error) {
	var stats model.Stats
	if len(records) == 0 {
		return nil, stats, eris.New("PHA-Pro export is empty")
	}
	cm, err := resolveColumns(records[0], abbReturnColumns)
	if err != nil {
		return nil, stats, err
	}

	table := &model.Table{Header: append([]string(nil), ABBReturnHeaders...)}
	seen := make(map[string]bool)
	lastTag, lastDesc := "", ""
	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		tag := cm.get(row, fieldTagName)
		firstOfTag := false
		if tag != "" {
			firstOfTag = tag != lastTag
			lastTag = tag
			if d := cm.get(row, fieldNewDescription); d != "" {
				lastDesc = d
			}
		} else {
			tag = lastTag
		}
		if !seen[tag] {
			seen[tag] = true
			stats.TagsProcessed++
		}
		alarmType := cm.get(row, fieldAlarmType)
		if alarmType == "" {
			continue
		}
		notes := abbNotesPrefix + cm.get(row, fieldAlarmComment)
		out := []string{"", "", alarmType,
			orDefault(cm.get(row, fieldNewEnable), abbDefaultEnable),
			orDefault(cm.get(row, fieldNewLimit), normalize.NoLimit),
			orDefault(cm.get(row, fieldNewPriority), abbDefaultPriority),
			orDefault(cm.get(row, fieldNewSeverity), abbDefaultSeverity),
			notes,
		}
		if firstOfTag {
			out[0], out[1] = tag, lastDesc
		}
		table.Rows = append(table.Rows, out)
		stats.AlarmsProcessed++
	}
	logging.Logf(logging.Info, "ABB return: %d tags, %d alarms", stats.TagsProcessed, stats.AlarmsProcessed)
	return table, stats, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
