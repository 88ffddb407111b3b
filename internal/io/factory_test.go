package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordSource(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		conn    string
		query   string
		want    interface{}
		wantErr error
		errText string
	}{
		{name: "csv file", path: "export.csv", want: &CSVFileSource{}},
		{name: "query wins over file", path: "export.csv", conn: "postgres://u:p@h/db", query: "SELECT 1", want: &PostgresSource{}},
		{name: "query without connection", query: "SELECT 1", errText: "connection string is required"},
		{name: "nothing given", path: "  ", wantErr: ErrNoSource},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := NewRecordSource(tc.path, tc.conn, tc.query)
			if tc.wantErr != nil || tc.errText != "" {
				require.Error(t, err)
				if tc.wantErr != nil {
					assert.ErrorIs(t, err, tc.wantErr)
				}
				if tc.errText != "" {
					assert.Contains(t, err.Error(), tc.errText)
				}
				assert.Nil(t, src)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.want, src)
		})
	}
}
