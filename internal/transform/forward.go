package transform

import (
	"fmt"
	"sort"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"
	"alarm-bridge/internal/processor"
	"alarm-bridge/internal/rules"

	"github.com/rotisserie/eris"
)

// ForwardOptions narrow a forward run. Zero values use the profile defaults.
type ForwardOptions struct {
	// SelectedUnits keeps only tags whose unit matches one of the values.
	SelectedUnits []string
	// UnitMethod overrides the profile unit method.
	UnitMethod string
	// SelectedModes replaces the profile default mode set.
	SelectedModes []string
	// Filter overrides the profile filter expression.
	Filter *processor.AlarmFilter
}

// Forward converts a multi-schema DCS dataset into a PHA-Pro import table in the profile's schema variant.
func Forward(ds *model.Dataset, p *config.ClientProfile, opts ForwardOptions) (*model.Table, model.Stats, error) {
	var stats model.Stats
	if p.ParserKind != config.ParserMultiSchemaCSV {
		return nil, stats, eris.Wrapf(ErrWrongLayout, "profile '%s' reads %s exports", p.ID, p.ParserKind)
	}
	header := Headers(p.OutputSchema)
	if header == nil {
		return nil, stats, eris.Errorf("profile '%s' has unknown output schema '%s'", p.ID, p.OutputSchema)
	}
	method := p.UnitMethod
	if opts.UnitMethod != "" {
		if !config.IsUnitMethod(opts.UnitMethod) {
			return nil, stats, eris.Errorf("unknown unit method '%s'", opts.UnitMethod)
		}
		method = opts.UnitMethod
	}
	filter, err := alarmFilter(p, opts.Filter)
	if err != nil {
		return nil, stats, err
	}

	modes := processor.NewModeSet(opts.SelectedModes, p.EmptyModeIsValid)
	logging.Logf(logging.Debug, "Forward transform for '%s': unit method %s, modes %v, units %v", p.ID, method, modes.Modes(), opts.SelectedUnits)

	tags := collectTags(ds, p, method, modes, opts.SelectedUnits, &stats)
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Unit != tags[j].Unit {
			return tags[i].Unit < tags[j].Unit
		}
		return tags[i].Name < tags[j].Name
	})

	units := make(map[string]bool)
	table := &model.Table{Header: header}
	for _, tag := range tags {
		src := rules.ClassifyTagSource(p, tag.Name, tag.PointType)
		first := true
		for _, a := range tag.Alarms {
			alarmType, ok := a.AlarmType.Get()
			if !ok {
				continue
			}
			if !filter.Keep(filterParams(tag, a, alarmType, src.Source)) {
				stats.Filtered++
				continue
			}
			table.Rows = append(table.Rows, forwardRow(tag, a, alarmType, src.Source, first).project(header))
			stats.AlarmsProcessed++
			if first {
				stats.TagsProcessed++
				units[tag.Unit] = true
				first = false
			}
		}
	}
	stats.Units = sortedKeys(units)
	logging.Logf(logging.Info, "Forward transform: %d tags, %d alarms, %d units, %d skipped by mode, %d filtered",
		stats.TagsProcessed, stats.AlarmsProcessed, len(stats.Units), stats.SkippedModes, stats.Filtered)
	return table, stats, nil
}

// collectTags joins the sub-tables, applies the mode filter and the unit selection.
func collectTags(ds *model.Dataset, p *config.ClientProfile, method string, modes processor.ModeSet, selected []string, stats *model.Stats) []model.TagRecord {
	tags := make([]model.TagRecord, 0, len(ds.Tags))
	for _, name := range ds.Tags {
		params := ds.Parameters[name]
		if len(params) == 0 {
			continue
		}
		kept := make([]model.AlarmParameter, 0, len(params))
		for _, a := range params {
			if modes.Allows(a.Mode) {
				kept = append(kept, a)
			}
		}
		stats.SkippedModes += len(params) - len(kept)
		if len(kept) == 0 {
			continue
		}

		v := ds.Variables[name]
		d := ds.DCS[name]
		code := unitCode(p, method, name, v.AssetPath)
		if !rules.UnitMatches(code, selected) {
			continue
		}
		unit := code
		if p.UseDCSUnitName && d.Unit != "" {
			unit = d.Unit
		}
		pointType := d.PointType
		if pointType == "" {
			pointType = v.PointType
		}
		tags = append(tags, model.TagRecord{
			Name:        name,
			AssetPath:   v.AssetPath,
			PointType:   pointType,
			Description: normalize.Parse(d.Description),
			EngUnits:    normalize.Parse(d.EngUnits),
			RangeMin:    normalize.Parse(normalize.StripThousands(d.RangeLow)).Or(defaultRangeMin),
			RangeMax:    normalize.Parse(normalize.StripThousands(d.RangeHigh)).Or(defaultRangeMax),
			PIDRef:      normalize.Parse(ds.Notes[name].DocRef).Or(defaultPID),
			Unit:        unit,
			Alarms:      kept,
		})
	}
	return tags
}

func unitCode(p *config.ClientProfile, method, tagName, assetPath string) string {
	if method == config.UnitMethodFixed {
		return p.UnitValue
	}
	return rules.ExtractUnit(tagName, assetPath, method, p.UnitDigitCount)
}

func forwardRow(tag model.TagRecord, a model.AlarmParameter, alarmType, source string, first bool) rowValues {
	rv := rowValues{}
	if first {
		desc := tag.Description.Or(normalize.Tilde)
		rv.set(tag.Unit, colUnit)
		rv.set(tag.Name, colTagName)
		rv.set(desc, colOldTagDescription, colNewTagDescription)
		rv.set(tag.PIDRef, colPID)
		rv.set(tag.RangeMin, colRangeMin)
		rv.set(tag.RangeMax, colRangeMax)
		rv.set(tag.EngUnits.Or(normalize.Tilde), colEngUnits)
		rv.set(source, colTagSource)
		if tag.PointType != "" {
			rv.set(fmt.Sprintf("Point Type = %s", tag.PointType), colTagComment)
		}
		rv.set(tagEnabled, colOldTagEnable, colNewTagEnable)
	}

	code, status := rules.MapPriority(a.Priority, a.Disabled.String())
	enable := rules.EnableStatus(a.Disabled)
	limit := ""
	if !rules.IsDiscrete(alarmType) {
		limit = normalize.StripThousands(a.Limit.String())
	}
	severity := rules.MapSeverity(a.Consequence)

	rv.set(alarmType, colAlarmType)
	rv.set(enable, colOldAlarmEnable, colNewAlarmEnable)
	rv.set(code, colOldPriority, colNewPriority)
	rv.set(limit, colOldLimit, colNewLimit)
	rv.set(a.Deadband.String(), colOldDeadband, colNewDeadband)
	rv.set(a.DeadbandUnit.String(), colOldDeadbandUnits, colNewDeadbandUnits)
	rv.set(a.OnDelay.String(), colOldOnDelay, colNewOnDelay)
	rv.set(a.OffDelay.String(), colOldOffDelay, colNewOffDelay)
	rv.set(rationalizationPending, colRationalizationStatus)
	rv.set(status, colAlarmStatus)
	rv.set(a.Purpose.Or(normalize.Tilde), colCauses)
	rv.set(a.ConsequenceText.Or(normalize.Tilde), colConsequences)
	rv.set(a.BoardOperator.Or(normalize.Tilde), colInsideActions)
	rv.set(a.FieldOperator.Or(normalize.Tilde), colOutsideActions)
	rv.set(severity, colFinancial, colMaxSeverity)
	rv.set(a.TimeToRespond.String(), colAllowableTTR, colTTRRange)
	return rv
}

func alarmFilter(p *config.ClientProfile, override *processor.AlarmFilter) (*processor.AlarmFilter, error) {
	if override != nil {
		return override, nil
	}
	f, err := processor.NewAlarmFilter(p.Filter)
	if err != nil {
		return nil, eris.Wrapf(err, "profile '%s'", p.ID)
	}
	return f, nil
}

func filterParams(tag model.TagRecord, a model.AlarmParameter, alarmType, source string) map[string]interface{} {
	return map[string]interface{}{
		"tag":       tag.Name,
		"unit":      tag.Unit,
		"mode":      a.Mode,
		"alarmType": alarmType,
		"priority":  a.Priority,
		"pointType": tag.PointType,
		"source":    source,
		"discrete":  rules.IsDiscrete(alarmType),
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
