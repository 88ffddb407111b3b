package io

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"alarm-bridge/internal/model"
	"alarm-bridge/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFileSource_Records(t *testing.T) {
	testCases := []struct {
		name     string
		content  []byte
		wantEnc  string
		wantCell string
	}{
		{name: "utf-8 with bom", content: []byte("\xef\xbb\xbf_Variable,17TI1,_DCS,\xc2\xb0C\n"), wantEnc: normalize.EncodingUTF8BOM, wantCell: "°C"},
		{name: "utf-8 without bom", content: []byte("_Variable,17TI1,_DCS,\xc2\xb0C\r\n"), wantEnc: normalize.EncodingUTF8BOM, wantCell: "°C"},
		{name: "latin-1", content: []byte("_Variable,17TI1,_DCS,\xb0C\n"), wantEnc: normalize.EncodingLatin1, wantCell: "°C"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := createTempFile(t, tc.content, "export_*.csv")
			src := NewCSVFileSource(path)
			records, err := src.Records(context.Background())
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "_Variable", records[0][0])
			assert.Equal(t, tc.wantCell, records[0][3])
			assert.Equal(t, tc.wantEnc, src.Encoding())
			assert.Equal(t, path, src.Describe())
		})
	}
}

func TestCSVFileSource_Errors(t *testing.T) {
	_, err := NewCSVFileSource(filepath.Join(t.TempDir(), "missing.csv")).Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := createTempFile(t, []byte("\xff\xfe"), "bad_*.csv")
	src := &CSVFileSource{Path: path, Candidates: []normalize.Candidate{normalize.UTF8}}
	_, err = src.Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, normalize.ErrUndecodable))
}

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV("a,b,c\nd\n\"e,1\",f\n")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d"}, {"e,1", "f"}}, records)

	records, err = ParseCSV("")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVTableWriter(t *testing.T) {
	table := &model.Table{
		Header: []string{"Tag", "Note"},
		Rows:   [][]string{{"17TI1", "100\u00a0°C"}, {"17TI2", "a,b"}},
	}
	w := NewCSVTableWriter()
	out, enc, err := w.EncodeTable(table)
	require.NoError(t, err)
	assert.Equal(t, normalize.EncodingLatin1, enc)
	assert.Equal(t, "Tag,Note\r\n17TI1,100\xa0\xb0C\r\n17TI2,\"a,b\"\r\n", string(out))

	headerless := &model.Table{Rows: [][]string{{"'_Variable", "17TI1", "Ω"}}}
	out, enc, err = w.EncodeTable(headerless)
	require.NoError(t, err)
	assert.Equal(t, normalize.EncodingUTF8, enc, "falls back when a rune is outside Latin-1")
	assert.Equal(t, "'_Variable,17TI1,Ω\r\n", string(out))

	path := filepath.Join(t.TempDir(), "out.csv")
	enc, err = (&CSVTableWriter{}).WriteTable(table, path)
	require.NoError(t, err)
	assert.Equal(t, normalize.EncodingLatin1, enc)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Tag,Note\n17TI1,100\xa0\xb0C\n17TI2,\"a,b\"\n", string(data))

	_, err = w.WriteTable(table, filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
}
