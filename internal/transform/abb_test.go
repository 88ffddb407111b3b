package transform

import (
	"errors"
	"testing"

	"alarm-bridge/internal/model"
	"alarm-bridge/internal/processor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wideTags() []model.WideTag {
	return []model.WideTag{
		{Name: "FT-101", Description: "Feed flow", Alarms: []model.WideAlarm{
			{Suffix: "H", AlarmType: "(PV) High", Enabled: 1, Level: 95.5, Severity: 2},
			{Suffix: "L", AlarmType: "(PV) Low", Enabled: 0, Level: -9999999, Severity: 1},
		}},
		{Name: "LT-7", Description: "Tank level", Alarms: []model.WideAlarm{
			{Suffix: "H", AlarmType: "(PV) High", Enabled: 1, Level: 80, Severity: 3},
		}},
	}
}

func TestForwardABB(t *testing.T) {
	table, stats, err := ForwardABB(wideTags(), profile(t, "rt_bessemer"), nil)
	require.NoError(t, err)
	require.Len(t, table.Header, 23)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, "Line 1", cellByName(t, table, 0, "Unit"))
	assert.Equal(t, "FT-101", cellByName(t, table, 0, "Starting Tag Name"))
	assert.Equal(t, "FT-101", cellByName(t, table, 0, "New Tag Name"))
	assert.Equal(t, "Feed flow", cellByName(t, table, 0, "Old Tag Description"))
	assert.Equal(t, "ABB 800xA (DCS)", cellByName(t, table, 0, "Tag Source"))
	assert.Equal(t, "Tag Type = Analog Input", cellByName(t, table, 0, "Rationalization (Tag) Comment"))
	assert.Equal(t, "-9999999", cellByName(t, table, 0, "Range Min"))
	assert.Equal(t, "95.5", cellByName(t, table, 0, "New Limit"))
	assert.Equal(t, "1", cellByName(t, table, 0, "New Alarm Enable Status"))
	assert.Equal(t, "2", cellByName(t, table, 0, "Old Alarm Severity"))
	assert.Equal(t, "3", cellByName(t, table, 0, "New (BPCS) Priority"))
	assert.Equal(t, "Alarm", cellByName(t, table, 0, "Alarm Status"))

	assert.Equal(t, "", cellByName(t, table, 1, "New Tag Name"))
	assert.Equal(t, "-9999999", cellByName(t, table, 1, "Old Limit"))
	assert.Equal(t, "None", cellByName(t, table, 1, "Alarm Status"))

	assert.Equal(t, "", cellByName(t, table, 2, "Unit"), "unit only on the first row")
	assert.Equal(t, "LT-7", cellByName(t, table, 2, "New Tag Name"))
	assert.Equal(t, "80", cellByName(t, table, 2, "New Limit"))

	assert.Equal(t, 2, stats.TagsProcessed)
	assert.Equal(t, 3, stats.AlarmsProcessed)
	assert.Equal(t, []string{"Line 1"}, stats.Units)
}

func TestForwardABB_FilterAndLayout(t *testing.T) {
	f, err := processor.NewAlarmFilter("alarmType == '(PV) High'")
	require.NoError(t, err)
	table, stats, err := ForwardABB(wideTags(), profile(t, "rt_bessemer"), f)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 1, stats.Filtered)

	_, _, err = ForwardABB(wideTags(), profile(t, "flng"), nil)
	assert.True(t, errors.Is(err, ErrWrongLayout))
}

func TestABBReturn(t *testing.T) {
	header := Headers("variant-C-23col")
	pha, _, err := ForwardABB(wideTags(), profile(t, "rt_bessemer"), nil)
	require.NoError(t, err)
	records := exportRecords(pha)
	setByName(t, records, 1, "New Limit", "97")
	setByName(t, records, 1, "Rationalization (Alarm) Comment", "Check feed pump")
	setByName(t, records, 2, "New Alarm Enable Status", "")
	setByName(t, records, 2, "New (BPCS) Priority", "")
	require.Equal(t, header, records[0])

	table, stats, err := ABBReturn(records)
	require.NoError(t, err)
	assert.Equal(t, ABBReturnHeaders, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"FT-101", "Feed flow", "(PV) High", "1", "97", "3", "2", "Cause:   Consequence:   Actions: Check feed pump"}, table.Rows[0])
	assert.Equal(t, []string{"", "", "(PV) Low", "0", "-9999999", "3", "1", "Cause:   Consequence:   Actions: "}, table.Rows[1])
	assert.Equal(t, "LT-7", table.Rows[2][0])
	assert.Equal(t, "Tank level", table.Rows[2][1])
	assert.Equal(t, 2, stats.TagsProcessed)
	assert.Equal(t, 3, stats.AlarmsProcessed)
}

func TestABBReturn_Errors(t *testing.T) {
	_, _, err := ABBReturn(nil)
	require.Error(t, err)

	_, _, err = ABBReturn([][]string{{"Unit", "Description"}})
	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"New Tag Name", "New Alarm Type"}, mce.Names())
}
