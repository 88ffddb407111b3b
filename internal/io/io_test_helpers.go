package io

import (
	"os"
	"testing"

	"github.com/xuri/excelize/v2"
)

// createTempFile writes content to a new file in a per-test directory.
func createTempFile(t *testing.T, content []byte, pattern string) string {
	t.Helper()
	tempFile, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file (pattern: %s): %v", pattern, err)
	}
	filePath := tempFile.Name()
	if _, err = tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		t.Fatalf("Failed to write to temp file %s: %v", filePath, err)
	}
	if err = tempFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file %s: %v", filePath, err)
	}
	return filePath
}

// createTempXLSX writes data onto sheetName of a new workbook; sheetName becomes the active sheet.
func createTempXLSX(t *testing.T, sheetName string, data [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		t.Fatalf("Failed to create sheet '%s': %v", sheetName, err)
	}
	f.SetActiveSheet(index)
	for r, rowData := range data {
		startCell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("Failed to get cell coordinates for row %d: %v", r+1, err)
		}
		row := append([]interface{}(nil), rowData...)
		if err := f.SetSheetRow(sheetName, startCell, &row); err != nil {
			t.Fatalf("Failed to set row %d on sheet '%s': %v", r+1, sheetName, err)
		}
	}
	filePath := createTempFile(t, nil, "test_*.xlsx")
	if err := f.SaveAs(filePath); err != nil {
		t.Fatalf("Failed to save temp XLSX file %s: %v", filePath, err)
	}
	return filePath
}

// readXLSXFile reads back all rows of a sheet.
func readXLSXFile(t *testing.T, filePath, sheetName string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		t.Fatalf("Failed to open XLSX file %s: %v", filePath, err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("Failed to get rows from sheet '%s' in %s: %v", sheetName, filePath, err)
	}
	return rows
}
