package io

import (
	"testing"

	"alarm-bridge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dynamoExport = `_Variable,17TI5879,_DCSVariable,/U17/17_FLARE/17TI5879,,,,,ANALGIN
_Variable,17TI5879,_DCS,DEGC,ANALGIN,"1,200",-50,Flare temp,,,U17
_Variable,17TI5879,_Parameter,NORMAL,,(PV) High,PVHIAL,850,M,,High,M,B,10 min,,,Purpose,,Board,Field,,,,,,TRUE
_Variable,17TI5879,_Parameter,Base,,(PV) High,PVHIAL,900,M,,High
_Variable,17TI5879,_Parameter,NORMAL,,~
_Variable,17TI5879,_Parameter,NORMAL
_Variable,17TI5879,_Notes,,,,,,,,,P&ID-17-001
_Variable,17TI5879,_DCSVariable,/U17/dup,,,,,DIGIN
_Variable,,_DCS,skipped
Header,17TI5879,_Parameter,NORMAL,,(PV) Low
_Variable,61FI001,_DCSVariable,/U61/61_PTF,,,,,REGCTL
_Variable,61FI001,_Unknown,x
_Variable,61FI001
`

func TestBuildDataset(t *testing.T) {
	records, err := ParseCSV(dynamoExport)
	require.NoError(t, err)
	ds := BuildDataset(records)

	assert.Equal(t, []string{"17TI5879", "61FI001"}, ds.Tags)
	assert.Equal(t, model.VariableRow{AssetPath: "/U17/dup", PointType: "DIGIN"}, ds.Variables["17TI5879"], "later rows replace the entry")
	assert.Equal(t, model.DCSRow{EngUnits: "DEGC", PointType: "ANALGIN", RangeHigh: "1,200", RangeLow: "-50", Description: "Flare temp", Unit: "U17"}, ds.DCS["17TI5879"])
	assert.Equal(t, "P&ID-17-001", ds.Notes["17TI5879"].DocRef)

	params := ds.Parameters["17TI5879"]
	require.Len(t, params, 3, "rows shorter than the alarm type column are dropped")
	first := params[0]
	assert.Equal(t, "NORMAL", first.Mode)
	assert.Equal(t, "(PV) High", first.AlarmType.String())
	assert.Equal(t, "850", first.Limit.String())
	assert.Equal(t, "High", first.Priority)
	assert.Equal(t, "B", first.Consequence)
	assert.Equal(t, "10 min", first.TimeToRespond.String())
	assert.Equal(t, "Purpose", first.Purpose.String())
	assert.Equal(t, "Board", first.BoardOperator.String())
	assert.Equal(t, "TRUE", first.Disabled.String())
	assert.False(t, first.ConsequenceText.IsSet())
	assert.False(t, params[2].AlarmType.IsSet(), "placeholder alarm type is absent")

	require.Len(t, ds.ParameterRows, 3)
	assert.Equal(t, "PVHIAL", ds.ParameterRows[0][model.ParamAlarmName])
	assert.Len(t, ds.ParameterRows[1], 11, "rows are kept verbatim")
	assert.Empty(t, ds.Parameters["61FI001"])
}

func TestBuildDataset_ImportMarker(t *testing.T) {
	ds := BuildDataset([][]string{
		{"'_Variable", "17TI5879", "_Parameter", "NORMAL", "", "(PV) High", "", "850"},
		{" '_Variable ", "17TI5879", "_DCSVariable", "", "", "", "", "", "ANALGIN"},
	})
	assert.Equal(t, []string{"17TI5879"}, ds.Tags)
	require.Len(t, ds.ParameterRows, 1)
	assert.Equal(t, "'_Variable", ds.ParameterRows[0][0], "rows are kept verbatim")
	require.Len(t, ds.Parameters["17TI5879"], 1)
	assert.Equal(t, "NORMAL", ds.Parameters["17TI5879"][0].Mode)
}

func TestBuildDataset_Empty(t *testing.T) {
	ds := BuildDataset(nil)
	assert.Empty(t, ds.Tags)
	assert.Empty(t, ds.ParameterRows)

	ds = BuildDataset([][]string{{"Tag", "Desc"}, {"a", "b", "c"}})
	assert.Empty(t, ds.Tags)
}
