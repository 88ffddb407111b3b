package transform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceRequired is returned by the reverse transforms when no original DCS dataset is given.
var ErrSourceRequired = errors.New("original DCS export is required for the reverse transform")

// ErrWrongLayout is returned when a transform is called with a profile of the other parser kind.
var ErrWrongLayout = errors.New("profile does not use this source layout")

// MissingColumn is a required PHA-Pro column absent from an export header.
type MissingColumn struct {
	Name    string
	Purpose string
}

// MissingColumnsError lists every required column absent from a PHA-Pro export.
type MissingColumnsError struct {
	Columns []MissingColumn
}

func (e *MissingColumnsError) Error() string {
	lines := make([]string, 0, len(e.Columns))
	for _, c := range e.Columns {
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Purpose))
	}
	return fmt.Sprintf("PHA-Pro export is missing %d required column(s):\n%s", len(e.Columns), strings.Join(lines, "\n"))
}

// Names returns the missing column names in report order.
func (e *MissingColumnsError) Names() []string {
	names := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		names[i] = c.Name
	}
	return names
}
