package transform

import (
	"errors"
	"strings"
	"testing"

	"alarm-bridge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChangeReport(t *testing.T) {
	longText := strings.Repeat("x", 150)
	ds := dataset(
		paramRecord("17TI1", "NORMAL", "(PV) High", "850", "High", map[int]string{
			model.ParamPurpose: "~", model.ParamConsequenceText: "~", model.ParamBoardOperator: "~", model.ParamFieldOperator: "~",
		}),
		paramRecord("17TI2", "NORMAL", "(PV) High", "5", "Low", map[int]string{
			model.ParamPurpose: "~", model.ParamConsequenceText: "~", model.ParamBoardOperator: "~", model.ParamFieldOperator: "~",
		}),
		paramRecord("17TI3", "NORMAL", "(PV) High", "1", "High", nil),
	)
	first := change("17TI1", "Honeywell TDC (DCS)", "(PV) High", "C", "900", "", "")
	first[7] = longText
	records := [][]string{
		reverseHeader,
		first,
		change("17TI2", "", "(PV) High", "L", "5", "", ""),
	}

	report, err := BuildChangeReport(records, ds, profile(t, "flng"), nil)
	require.NoError(t, err)
	require.Len(t, report.Records, 1, "unchanged and unmatched alarms are not reported")

	rec := report.Records[0]
	assert.Equal(t, "17TI1", rec.TagName)
	assert.Equal(t, "17", rec.Unit)
	assert.Equal(t, "Honeywell TDC (DCS)", rec.TagSource)
	require.Len(t, rec.Fields, 9)
	assert.Equal(t, FieldChange{Field: "Limit", Original: "850", New: "900", Changed: true}, rec.Fields[0])
	assert.Equal(t, FieldChange{Field: "Priority", Original: "High", New: "Critical", Changed: true}, rec.Fields[1])
	assert.False(t, rec.Fields[2].Changed)
	assert.True(t, rec.Fields[4].Changed)
	assert.Equal(t, strings.Repeat("x", 100)+"...", rec.Fields[4].New)
	assert.Equal(t, "~", rec.Fields[4].Original)

	assert.Equal(t, []FieldChangeCount{{"Limit", 1}, {"Priority", 1}, {"Purpose", 1}}, report.FieldCounts())

	detail := report.DetailRows()
	require.Len(t, detail, 2)
	require.Len(t, detail[0], 4+3*9)
	assert.Equal(t, "Original Limit", detail[0][4])
	assert.Equal(t, "Limit Changed", detail[0][6])
	assert.Equal(t, "✓", detail[1][6])
	assert.Equal(t, "", detail[1][12], "severity unchanged")

	summary := report.SummaryRows()
	assert.Equal(t, []interface{}{"Total Alarms with Changes:", 1}, summary[2])
	assert.Equal(t, []interface{}{"Changes by Field:"}, summary[4])
	assert.Equal(t, []interface{}{"Purpose", 1}, summary[7])
}

func TestBuildChangeReport_NoChanges(t *testing.T) {
	ds := dataset(paramRecord("17TI1", "NORMAL", "(PV) High", "5", "Low", map[int]string{
		model.ParamPurpose: "~", model.ParamConsequenceText: "~", model.ParamBoardOperator: "~", model.ParamFieldOperator: "~",
	}))
	records := [][]string{reverseHeader, change("17TI1", "", "(PV) High", "L", "5.0", "", "")}
	report, err := BuildChangeReport(records, ds, profile(t, "flng"), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Records)
	assert.Equal(t, [][]interface{}{{"No changes detected"}}, report.DetailRows())
	assert.Len(t, report.SummaryRows(), 3)

	_, err = BuildChangeReport(records, nil, profile(t, "flng"), nil)
	assert.True(t, errors.Is(err, ErrSourceRequired))
}
