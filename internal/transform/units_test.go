package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanUnits(t *testing.T) {
	records := [][]string{
		variableRecord("17TI5879", "/U17/17_FLARE/17TI5879", "ANALGIN"),
		variableRecord("61FI001", "/Plant/Unit61/61_PTF", "REGCTL"),
		variableRecord("SIREN", "", "DIGIN"),
		variableRecord("170XV1", "/u170/X", "DIGIN"),
		paramRecord("99TI1", "NORMAL", "(PV) High", "1", "High", nil),
		{"_Variable", "88TI1"},
	}
	scan := ScanUnits(records, 0)
	assert.Equal(t, []string{"17", "61"}, scan.ByTagPrefix)
	assert.Equal(t, []string{"17", "170", "61"}, scan.ByAssetPath)

	scan = ScanUnits(records, 3)
	assert.Equal(t, []string{"17", "170", "61"}, scan.ByTagPrefix)
}
