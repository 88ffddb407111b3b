package transform

import (
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/processor"

	"github.com/rotisserie/eris"
)

// ChangeSet is the set of rationalized decisions of a PHA-Pro export, one per (tag, alarm type).
type ChangeSet struct {
	entries map[model.AlarmKey]model.ChangeEntry
	order   []model.AlarmKey
}

// ParseChangeSet reads a PHA-Pro export (header row first). Blank tag name and tag source
// cells inherit the last non-blank value above them; rows without an alarm type are skipped;
// a later row for the same key replaces an earlier one. The required columns follow schema.
func ParseChangeSet(records [][]string, schema string) (*ChangeSet, error) {
	if len(records) == 0 {
		return nil, eris.New("PHA-Pro export is empty")
	}
	cm, err := resolveColumns(records[0], reverseColumnsFor(schema))
	if err != nil {
		return nil, err
	}

	var parsed []model.ChangeEntry
	lastTag, lastSource := "", ""
	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		tag := cm.get(row, fieldTagName)
		if tag != "" {
			lastTag = tag
			if src := cm.get(row, fieldTagSource); src != "" {
				lastSource = src
			}
		} else {
			tag = lastTag
		}
		alarmType := cm.get(row, fieldAlarmType)
		if alarmType == "" || tag == "" {
			continue
		}
		parsed = append(parsed, model.ChangeEntry{
			Unit:                  cm.get(row, fieldUnit),
			TagName:               tag,
			AlarmType:             alarmType,
			TagSource:             lastSource,
			NewLimit:              cm.get(row, fieldNewLimit),
			NewPriority:           cm.get(row, fieldNewPriority),
			MaxSeverity:           cm.get(row, fieldMaxSeverity),
			TimeToRespond:         cm.get(row, fieldTTR),
			Causes:                cm.get(row, fieldCauses),
			Consequences:          cm.get(row, fieldConsequences),
			InsideActions:         cm.get(row, fieldInsideActions),
			OutsideActions:        cm.get(row, fieldOutsideActions),
			NewEnableStatus:       cm.get(row, fieldNewEnable),
			AlarmStatus:           cm.get(row, fieldAlarmStatus),
			RationalizationStatus: cm.get(row, fieldRationalizationStatus),
		})
	}

	unique, replaced := processor.Dedup(parsed, changeKey, processor.DedupStrategyLast)
	cs := &ChangeSet{entries: make(map[model.AlarmKey]model.ChangeEntry, len(unique))}
	for _, e := range unique {
		k := changeKey(e)
		cs.entries[k] = e
		cs.order = append(cs.order, k)
	}
	logging.Logf(logging.Debug, "Parsed PHA-Pro export: %d decisions (%d replaced by later rows)", len(unique), replaced)
	return cs, nil
}

func changeKey(e model.ChangeEntry) model.AlarmKey {
	return model.AlarmKey{Tag: e.TagName, AlarmType: e.AlarmType}
}

// Lookup returns the decision for key.
func (cs *ChangeSet) Lookup(key model.AlarmKey) (model.ChangeEntry, bool) {
	e, ok := cs.entries[key]
	return e, ok
}

// Len returns the number of distinct decisions.
func (cs *ChangeSet) Len() int { return len(cs.entries) }

// Keys returns the decision keys in first-seen order.
func (cs *ChangeSet) Keys() []model.AlarmKey {
	return append([]model.AlarmKey(nil), cs.order...)
}
