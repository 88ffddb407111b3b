package processor

import (
	"alarm-bridge/internal/logging"
)

// Dedup strategies.
const (
	DedupStrategyFirst = "first" // Keep the first record encountered
	DedupStrategyLast  = "last"  // Keep the last record encountered
)

// Dedup removes records with repeated keys. Survivors keep the position of the first
// occurrence of their key; with DedupStrategyLast the value is the last occurrence's.
// It returns the survivors and the number of dropped records.
func Dedup[T any, K comparable](records []T, key func(T) K, strategy string) ([]T, int) {
	index := make(map[K]int, len(records))
	kept := make([]T, 0, len(records))
	dropped := 0
	for i, rec := range records {
		k := key(rec)
		pos, seen := index[k]
		if !seen {
			index[k] = len(kept)
			kept = append(kept, rec)
			continue
		}
		dropped++
		if strategy == DedupStrategyLast {
			logging.Logf(logging.Debug, "Dedup (last): record %d replaces earlier record for key %v", i, k)
			kept[pos] = rec
		} else {
			logging.Logf(logging.Debug, "Dedup (first): record %d dropped, key %v already seen", i, k)
		}
	}
	return kept, dropped
}
