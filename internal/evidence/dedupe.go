package evidence

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Dedupe removes records sharing the full six-field key, preserving
// first-seen order. Given deterministic table and row iteration the
// result is reproducible across runs, which is what lets the output
// serve as a scoring baseline.
func Dedupe(records []Record) []Record {
	seen := orderedmap.NewOrderedMap[string, Record]()
	for _, r := range records {
		key := r.Key()
		if _, ok := seen.Get(key); !ok {
			seen.Set(key, r)
		}
	}

	out := make([]Record, 0, seen.Len())
	for el := seen.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// CountByClass tallies records per evidence class.
func CountByClass(records []Record) map[Class]int {
	counts := make(map[Class]int)
	for _, r := range records {
		counts[r.EntityType]++
	}
	return counts
}
