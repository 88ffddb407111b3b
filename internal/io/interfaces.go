package io

import (
	"context"

	"alarm-bridge/internal/model"
)

// RecordSource yields raw CSV-shaped records, one slice of cells per row.
type RecordSource interface {
	// Records reads every record. File sources decode the text first; database sources
	// stringify each column value.
	Records(ctx context.Context) ([][]string, error)
	// Describe names the source for log lines, with credentials masked.
	Describe() string
}

// TableWriter serializes an output table to a destination path.
type TableWriter interface {
	// WriteTable writes the header (when non-empty) and rows, returning the text encoding used.
	WriteTable(table *model.Table, path string) (string, error)
}
