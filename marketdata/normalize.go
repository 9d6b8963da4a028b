package marketdata

import "sort"

// normalize brings provider rows to the canonical shape: sorted ascending by
// date, one row per date (last one wins), and AdjClose backfilled from Close
// when the provider did not supply one. Other missing columns keep the NaN
// sentinel. Normalizing an already-normalized slice is a no-op.
func normalize(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	kept := out[:0]
	for _, r := range out {
		if isNaN(r.AdjClose) {
			r.AdjClose = r.Close
		}
		if n := len(kept); n > 0 && kept[n-1].Date == r.Date {
			kept[n-1] = r
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
