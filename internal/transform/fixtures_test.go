package transform

import (
	"testing"

	"alarm-bridge/internal/config"
	bridgeio "alarm-bridge/internal/io"
	"alarm-bridge/internal/model"

	"github.com/stretchr/testify/require"
)

func variableRecord(tag, assetPath, pointType string) []string {
	row := make([]string, 9)
	row[0], row[1], row[2] = model.RowMarker, tag, model.SchemaDCSVariable
	row[3], row[8] = assetPath, pointType
	return row
}

func dcsRecord(tag, desc, engUnits, low, high string) []string {
	row := make([]string, 11)
	row[0], row[1], row[2] = model.RowMarker, tag, model.SchemaDCS
	row[3], row[5], row[6], row[7] = engUnits, high, low, desc
	return row
}

// paramRecord builds a 42-field _Parameter row; extra sets further fields by position.
func paramRecord(tag, mode, alarmType, value, priority string, extra map[int]string) []string {
	row := make([]string, model.DCSRowWidth)
	row[0], row[1], row[2] = model.RowMarker, tag, model.SchemaParameter
	row[model.ParamMode] = mode
	row[model.ParamAlarmType] = alarmType
	row[model.ParamValue] = value
	row[model.ParamPriority] = priority
	for i, v := range extra {
		row[i] = v
	}
	return row
}

func dataset(records ...[]string) *model.Dataset {
	return bridgeio.BuildDataset(records)
}

func profile(t *testing.T, id string) *config.ClientProfile {
	t.Helper()
	p, err := config.DefaultRegistry().Resolve(id, "")
	require.NoError(t, err)
	return p
}

// cellByName returns the cell of row under the named header column.
func cellByName(t *testing.T, table *model.Table, row int, name string) string {
	t.Helper()
	for i, h := range table.Header {
		if h == name {
			require.Less(t, row, len(table.Rows))
			return table.Rows[row][i]
		}
	}
	t.Fatalf("column %q not in header", name)
	return ""
}

// exportRecords turns a forward table into PHA-Pro export records, header first.
func exportRecords(table *model.Table) [][]string {
	out := [][]string{append([]string(nil), table.Header...)}
	for _, r := range table.Rows {
		out = append(out, append([]string(nil), r...))
	}
	return out
}

// setByName sets a cell of an export record by header name.
func setByName(t *testing.T, records [][]string, row int, name, value string) {
	t.Helper()
	for i, h := range records[0] {
		if h == name {
			records[row][i] = value
			return
		}
	}
	t.Fatalf("column %q not in header", name)
}
