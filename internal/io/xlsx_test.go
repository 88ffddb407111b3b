package io

import (
	"path/filepath"
	"testing"

	"alarm-bridge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var abbTypes = []config.ABBAlarmType{
	{Suffix: "H", Name: "(PV) High"},
	{Suffix: "HH", Name: "(PV) High High"},
	{Suffix: "L", Name: "(PV) Low"},
}

func TestWideWorkbookReader_Read(t *testing.T) {
	data := [][]interface{}{
		{"Path", "Area", "Type", "Name", "Description", "AECONFHH", "AECONFH", "AELEVELH", "AELEVELHH", "AESEVH", "OBJ.AESEVHH"},
		{"/a", "A1", "AI", "FT-101", "Feed flow", 0, 1, 95.5, "1,200", 2, ""},
		{"/a", "A1", "AI", "", "no name", 1, 1, 1, 1, 1, 1},
		{"/a", "A1", "AI", "nan", "pandas blank", 1, 1, 1, 1, 1, 1},
		{"/a", "A1", "AI", "LT-7", "Tank level", "", "1", "n/a", "", "", 4},
	}
	path := createTempXLSX(t, "Alarms", data)

	tags, err := NewWideWorkbookReader("").Read(path, abbTypes)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	ft := tags[0]
	assert.Equal(t, "FT-101", ft.Name)
	assert.Equal(t, "Feed flow", ft.Description)
	require.Len(t, ft.Alarms, 3)
	assert.Equal(t, "(PV) High", ft.Alarms[0].AlarmType)
	assert.Equal(t, 1, ft.Alarms[0].Enabled, "AECONFH does not resolve to AECONFHH")
	assert.Equal(t, 95.5, ft.Alarms[0].Level)
	assert.Equal(t, 2, ft.Alarms[0].Severity)
	assert.Equal(t, 0, ft.Alarms[1].Enabled)
	assert.Equal(t, 1200.0, ft.Alarms[1].Level)
	assert.Equal(t, 1, ft.Alarms[1].Severity, "blank severity defaults to 1")
	assert.Equal(t, "L", ft.Alarms[2].Suffix)
	assert.Equal(t, 0, ft.Alarms[2].Enabled, "missing columns use defaults")
	assert.Equal(t, -9999999.0, ft.Alarms[2].Level)
	assert.Equal(t, 1, ft.Alarms[2].Severity)

	lt := tags[1]
	assert.Equal(t, 0, lt.Alarms[1].Enabled)
	assert.Equal(t, 1, lt.Alarms[0].Enabled)
	assert.Equal(t, -9999999.0, lt.Alarms[0].Level)
	assert.Equal(t, 4, lt.Alarms[1].Severity, "contains match on a prefixed header")
}

func TestWideWorkbookReader_Sheets(t *testing.T) {
	path := createTempXLSX(t, "Export", [][]interface{}{{"NAME", "DESCRIPTION"}, {"FT-1", "d"}})

	tags, err := NewWideWorkbookReader("Export").Read(path, abbTypes)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "d", tags[0].Description)

	_, err = NewWideWorkbookReader("Missing").Read(path, abbTypes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = NewWideWorkbookReader("").Read(filepath.Join(t.TempDir(), "none.xlsx"), abbTypes)
	require.Error(t, err)
}

func TestParseWideRows_PositionalFallback(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c", "d", "e"},
		{"1", "2", "3", "TAG-1", "Description 1"},
	}
	tags := ParseWideRows(rows, abbTypes[:1])
	require.Len(t, tags, 1)
	assert.Equal(t, "TAG-1", tags[0].Name)
	assert.Equal(t, "Description 1", tags[0].Description)

	assert.Empty(t, ParseWideRows(nil, abbTypes))
}

func TestWorkbookWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	sheets := []Sheet{
		{Name: "Change Report", Rows: [][]interface{}{{"Tag", "Changed"}, {"17TI1", "✓"}}},
		{Name: "Summary", Rows: [][]interface{}{{"Change Report Summary"}, {}, {"Total Alarms with Changes:", 1}}},
	}
	require.NoError(t, NewWorkbookWriter().Write(sheets, path))

	assert.Equal(t, [][]string{{"Tag", "Changed"}, {"17TI1", "✓"}}, readXLSXFile(t, path, "Change Report"))
	summary := readXLSXFile(t, path, "Summary")
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Total Alarms with Changes:", "1"}, summary[2])

	assert.Error(t, NewWorkbookWriter().Write(nil, path))
}
