package io

import (
	"strings"

	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"
)

// Positional fields of the multi-schema DCS export, by sub-schema.
const (
	varAssetPath = 3
	varPointType = 8

	dcsEngUnits  = 3
	dcsPointType = 4
	dcsRangeHigh = 5
	dcsRangeLow  = 6
	dcsDesc      = 7
	dcsUnit      = 10

	notesDocRef = 11

	minRowCells       = 3
	minParameterCells = model.ParamAlarmType + 1
)

// cell returns the trimmed value at i, or "" when the row is shorter.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// BuildDataset buckets multi-schema records into per-tag sub-tables. Rows without the
// _Variable marker, short rows and unknown sub-schemas are skipped. The marker may carry the
// leading apostrophe of a generated import file.
func BuildDataset(records [][]string) *model.Dataset {
	ds := model.NewDataset()
	skipped := 0
	for _, row := range records {
		if len(row) < minRowCells || rowMarker(row[0]) != model.RowMarker {
			skipped++
			continue
		}
		tag := strings.TrimSpace(row[1])
		if tag == "" {
			skipped++
			continue
		}
		switch strings.TrimSpace(row[2]) {
		case model.SchemaDCSVariable:
			if _, seen := ds.Variables[tag]; !seen {
				ds.Tags = append(ds.Tags, tag)
			}
			ds.Variables[tag] = model.VariableRow{
				AssetPath: cell(row, varAssetPath),
				PointType: cell(row, varPointType),
			}
		case model.SchemaDCS:
			ds.DCS[tag] = model.DCSRow{
				EngUnits:    cell(row, dcsEngUnits),
				PointType:   cell(row, dcsPointType),
				RangeHigh:   cell(row, dcsRangeHigh),
				RangeLow:    cell(row, dcsRangeLow),
				Description: cell(row, dcsDesc),
				Unit:        cell(row, dcsUnit),
			}
		case model.SchemaParameter:
			if len(row) < minParameterCells {
				skipped++
				continue
			}
			ds.Parameters[tag] = append(ds.Parameters[tag], parseParameter(row))
			ds.ParameterRows = append(ds.ParameterRows, append([]string(nil), row...))
		case model.SchemaNotes:
			ds.Notes[tag] = model.NotesRow{DocRef: cell(row, notesDocRef)}
		default:
			skipped++
		}
	}
	logging.Logf(logging.Debug, "Parsed DCS export: %d tags, %d parameter rows, %d rows skipped", len(ds.Tags), len(ds.ParameterRows), skipped)
	return ds
}

func rowMarker(c string) string {
	return strings.TrimPrefix(strings.TrimSpace(c), "'")
}

func parseParameter(row []string) model.AlarmParameter {
	return model.AlarmParameter{
		Mode:            cell(row, model.ParamMode),
		AlarmType:       normalize.Parse(cell(row, model.ParamAlarmType)),
		Limit:           normalize.Parse(cell(row, model.ParamValue)),
		Priority:        cell(row, model.ParamPriority),
		Consequence:     cell(row, model.ParamConsequence),
		TimeToRespond:   normalize.Parse(cell(row, model.ParamTimeToRespond)),
		Purpose:         normalize.Parse(cell(row, model.ParamPurpose)),
		ConsequenceText: normalize.Parse(cell(row, model.ParamConsequenceText)),
		BoardOperator:   normalize.Parse(cell(row, model.ParamBoardOperator)),
		FieldOperator:   normalize.Parse(cell(row, model.ParamFieldOperator)),
		SupportingNotes: normalize.Parse(cell(row, model.ParamSupportingNotes)),
		Disabled:        normalize.Parse(cell(row, model.ParamDisabled)),
		OnDelay:         normalize.Parse(cell(row, model.ParamOnDelay)),
		OffDelay:        normalize.Parse(cell(row, model.ParamOffDelay)),
		Deadband:        normalize.Parse(cell(row, model.ParamDeadband)),
		DeadbandUnit:    normalize.Parse(cell(row, model.ParamDeadbandUnit)),
	}
}
