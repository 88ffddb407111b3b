package io

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strings"

	"alarm-bridge/internal/logging"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"

	"github.com/rotisserie/eris"
)

// CSVFileSource reads a CSV export whose text encoding is not known in advance.
type CSVFileSource struct {
	Path       string
	Candidates []normalize.Candidate // Tried in order; DefaultCandidates when empty.
	encoding   string
}

// NewCSVFileSource creates a source for path with the default encoding candidates.
func NewCSVFileSource(path string) *CSVFileSource {
	return &CSVFileSource{Path: path}
}

// Records decodes the file and splits it into records.
func (s *CSVFileSource) Records(_ context.Context) ([][]string, error) {
	logging.Logf(logging.Debug, "CSVFileSource reading file: %s", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open file '%s'", s.Path)
	}
	text, enc, err := normalize.Decode(data, s.Candidates...)
	if err != nil {
		return nil, eris.Wrapf(err, "file '%s'", s.Path)
	}
	s.encoding = enc
	logging.Logf(logging.Debug, "CSVFileSource decoded '%s' as %s (%d bytes)", s.Path, enc, len(data))

	records, err := ParseCSV(text)
	if err != nil {
		return nil, eris.Wrapf(err, "file '%s'", s.Path)
	}
	return records, nil
}

// Encoding returns the encoding chosen by the last successful Records call.
func (s *CSVFileSource) Encoding() string { return s.encoding }

// Describe returns the file path.
func (s *CSVFileSource) Describe() string { return s.Path }

// ParseCSV splits decoded text into records. Rows may have differing field counts.
func ParseCSV(text string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, eris.Wrapf(parseErr.Err, "csv parse error on line %d, column %d", parseErr.Line, parseErr.Column)
		}
		return nil, eris.Wrap(err, "csv: read rows")
	}
	if len(records) == 0 {
		logging.Logf(logging.Warning, "CSV input is empty or contains no data")
	}
	return records, nil
}

// CSVTableWriter writes tables as CSV in a single-byte encoding where possible.
type CSVTableWriter struct {
	// CRLF terminates lines with \r\n, as DCS import tools expect.
	CRLF bool
}

// NewCSVTableWriter returns a writer using CRLF line endings.
func NewCSVTableWriter() *CSVTableWriter {
	return &CSVTableWriter{CRLF: true}
}

// EncodeTable renders the table and encodes it. The encoding is Latin-1 unless a
// character outside it is present, in which case UTF-8 is used.
func (w *CSVTableWriter) EncodeTable(table *model.Table) ([]byte, string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = w.CRLF
	if len(table.Header) > 0 {
		if err := cw.Write(table.Header); err != nil {
			return nil, "", eris.Wrap(err, "csv: write header")
		}
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return nil, "", eris.Wrap(err, "csv: write rows")
	}
	out, enc := normalize.EncodeSingleByte(buf.String())
	if enc != normalize.EncodingLatin1 {
		logging.Logf(logging.Warning, "Output contains characters outside Latin-1; writing UTF-8 instead")
	}
	return out, enc, nil
}

// WriteTable encodes the table and writes it to path.
func (w *CSVTableWriter) WriteTable(table *model.Table, path string) (string, error) {
	out, enc, err := w.EncodeTable(table)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", eris.Wrapf(err, "failed to write output file '%s'", path)
	}
	logging.Logf(logging.Debug, "CSVTableWriter wrote %d rows to %s (%s)", len(table.Rows), path, enc)
	return enc, nil
}
