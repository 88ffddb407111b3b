package transform

import (
	"strings"

	"alarm-bridge/internal/config"
	"alarm-bridge/internal/model"
	"alarm-bridge/internal/rules"
)

// UnitScan lists the units found in a DCS export, by derivation method.
type UnitScan struct {
	// ByTagPrefix holds the leading-digit units of the tag names.
	ByTagPrefix []string
	// ByAssetPath holds the /U<n>/ numbers of the asset paths.
	ByAssetPath []string
}

// ScanUnits collects the distinct units of every _DCSVariable row so operators can pick unit filters.
func ScanUnits(records [][]string, digitCount int) UnitScan {
	if digitCount <= 0 {
		digitCount = config.DefaultUnitDigitCount
	}
	byPrefix := make(map[string]bool)
	byAsset := make(map[string]bool)
	for _, row := range records {
		if len(row) < 4 || strings.TrimSpace(row[0]) != model.RowMarker || strings.TrimSpace(row[2]) != model.SchemaDCSVariable {
			continue
		}
		if u := rules.ExtractUnit(strings.TrimSpace(row[1]), "", config.UnitMethodTagPrefix, digitCount); u != rules.UnitSentinel {
			byPrefix[u] = true
		}
		if u := rules.AssetUnitNumber(row[3]); u != "" {
			byAsset[u] = true
		}
	}
	return UnitScan{ByTagPrefix: sortedKeys(byPrefix), ByAssetPath: sortedKeys(byAsset)}
}

