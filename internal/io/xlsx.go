package io

import (
	"strings"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"

	"github.com/rotisserie/eris"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Defaults of a wide workbook alarm whose companion columns are missing or blank.
const (
	wideDefaultEnabled  = 0
	wideDefaultLevel    = -9999999.0
	wideDefaultSeverity = 1

	wideFallbackNameCol = 3
	wideFallbackDescCol = 4
)

// WideWorkbookReader reads ABB style workbooks: one row per tag, three columns per alarm suffix.
type WideWorkbookReader struct {
	sheetName string
}

// NewWideWorkbookReader reads sheetName, or the active sheet when empty.
func NewWideWorkbookReader(sheetName string) *WideWorkbookReader {
	return &WideWorkbookReader{sheetName: sheetName}
}

// Read loads every tag row. Each tag carries one alarm per configured suffix, in configured order.
func (wr *WideWorkbookReader) Read(filePath string, alarmTypes []config.ABBAlarmType) ([]model.WideTag, error) {
	logging.Logf(logging.Debug, "WideWorkbookReader reading file: %s (SheetName: '%s')", filePath, wr.sheetName)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open workbook '%s'", filePath)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Logf(logging.Error, "WideWorkbookReader failed to close file '%s': %v", filePath, err)
		}
	}()

	sheet := wr.sheetName
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
		if sheet == "" {
			sheet = f.GetSheetName(0)
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, eris.Errorf("sheet '%s' not found in '%s'", sheet, filePath)
	}
	if sheet == "" {
		return nil, eris.Errorf("workbook '%s' contains no sheets", filePath)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to get rows from sheet '%s' in '%s'", sheet, filePath)
	}
	return ParseWideRows(rows, alarmTypes), nil
}

type wideColumns struct {
	conf, level, sev int
}

// ParseWideRows converts a header row plus data rows into tags.
func ParseWideRows(rows [][]string, alarmTypes []config.ABBAlarmType) []model.WideTag {
	tags := make([]model.WideTag, 0)
	if len(rows) == 0 {
		logging.Logf(logging.Warning, "Wide workbook is empty or has no header row")
		return tags
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	nameCol := findHeader(header, "NAME", "OBJECT NAME")
	if nameCol < 0 {
		nameCol = wideFallbackNameCol
		logging.Logf(logging.Warning, "Wide workbook has no NAME column; using column %d", nameCol+1)
	}
	descCol := findHeader(header, "DESCRIPTION")
	if descCol < 0 {
		descCol = wideFallbackDescCol
	}

	cols := make([]wideColumns, len(alarmTypes))
	for i, at := range alarmTypes {
		s := strings.ToUpper(at.Suffix)
		cols[i] = wideColumns{
			conf:  findSuffixColumn(header, "AECONF"+s),
			level: findSuffixColumn(header, "AELEVEL"+s),
			sev:   findSuffixColumn(header, "AESEV"+s),
		}
	}

	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" || strings.EqualFold(name, "nan") {
			continue
		}
		tag := model.WideTag{Name: name, Description: cell(row, descCol)}
		for i, at := range alarmTypes {
			tag.Alarms = append(tag.Alarms, model.WideAlarm{
				Suffix:    at.Suffix,
				AlarmType: at.Name,
				Enabled:   intCell(row, cols[i].conf, wideDefaultEnabled),
				Level:     floatCell(row, cols[i].level, wideDefaultLevel),
				Severity:  intCell(row, cols[i].sev, wideDefaultSeverity),
			})
		}
		tags = append(tags, tag)
	}
	logging.Logf(logging.Debug, "Parsed wide workbook: %d tags, %d alarm suffixes", len(tags), len(alarmTypes))
	return tags
}

func findHeader(header []string, names ...string) int {
	for _, n := range names {
		for i, h := range header {
			if h == n {
				return i
			}
		}
	}
	return -1
}

// findSuffixColumn prefers an exact header, then a header ending in key, then any header
// containing key. The ordering keeps AECONFH from resolving to AECONFHH.
func findSuffixColumn(header []string, key string) int {
	for _, match := range []func(string) bool{
		func(h string) bool { return h == key },
		func(h string) bool { return strings.HasSuffix(h, key) },
		func(h string) bool { return strings.Contains(h, key) },
	} {
		for i, h := range header {
			if match(h) {
				return i
			}
		}
	}
	return -1
}

func floatCell(row []string, i int, def float64) float64 {
	if i < 0 {
		return def
	}
	v := cell(row, i)
	if normalize.IsPlaceholder(v) || strings.EqualFold(v, "nan") {
		return def
	}
	f, err := cast.ToFloat64E(normalize.StripThousands(v))
	if err != nil {
		return def
	}
	return f
}

func intCell(row []string, i int, def int) int {
	const unset = -1 << 62
	f := floatCell(row, i, unset)
	if f == unset {
		return def
	}
	return cast.ToInt(f)
}

// Sheet is one worksheet of a workbook to write.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// WorkbookWriter writes sheets of raw cell values to an xlsx file.
type WorkbookWriter struct{}

// NewWorkbookWriter returns a workbook writer.
func NewWorkbookWriter() *WorkbookWriter { return &WorkbookWriter{} }

// Write creates the workbook at filePath with sheets in the given order; the first is active.
func (ww *WorkbookWriter) Write(sheets []Sheet, filePath string) error {
	if len(sheets) == 0 {
		return eris.New("workbook needs at least one sheet")
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.Logf(logging.Error, "WorkbookWriter failed to close '%s': %v", filePath, err)
		}
	}()

	defaultSheet := f.GetSheetName(0)
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				return eris.Wrapf(err, "failed to rename sheet to '%s'", s.Name)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return eris.Wrapf(err, "failed to create sheet '%s'", s.Name)
		}
		for r, row := range s.Rows {
			cellName, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return eris.Wrapf(err, "invalid cell for row %d", r+1)
			}
			values := row
			if err := f.SetSheetRow(s.Name, cellName, &values); err != nil {
				return eris.Wrapf(err, "failed to write row %d of sheet '%s'", r+1, s.Name)
			}
		}
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(filePath); err != nil {
		return eris.Wrapf(err, "failed to save workbook '%s'", filePath)
	}
	logging.Logf(logging.Debug, "WorkbookWriter wrote %d sheets to %s", len(sheets), filePath)
	return nil
}
