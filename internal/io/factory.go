package io

import (
	"errors"
	"strings"

	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/util"
)

// ErrNoSource is returned when neither a file nor a database query was given.
var ErrNoSource = errors.New("no input file or database query given")

// NewRecordSource returns a Postgres source when query is set and a CSV file source otherwise.
func NewRecordSource(path, dbConnStr, query string) (RecordSource, error) {
	if strings.TrimSpace(query) != "" {
		if strings.TrimSpace(dbConnStr) == "" {
			return nil, errors.New("database connection string is required when a source query is given")
		}
		logging.Logf(logging.Debug, "Creating postgres record source: %s", util.MaskCredentials(dbConnStr))
		return NewPostgresSource(dbConnStr, query), nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoSource
	}
	logging.Logf(logging.Debug, "Creating CSV record source: %s", path)
	return NewCSVFileSource(path), nil
}
