package detect

import (
	"time"

	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/schema"
)

// TemporalDetectors returns the temporal detector set: the epoch detector
// first, then the textual ISO-8601 detector, matching the reporting order
// of the output.
func TemporalDetectors(cfg *Config) []ValueDetector {
	return []ValueDetector{
		epochDetector{cfg},
		isoDetector{cfg},
	}
}

type epochDetector struct{ cfg *Config }

func (d epochDetector) Subtype() string { return evidence.SubtypeUnixEpoch }

// Wants scans integer columns always; the name heuristic widens the scan
// to any time-named column regardless of declared type.
func (d epochDetector) Wants(col Column) bool {
	return col.Class == schema.ClassInteger || col.Hints.Time
}

// Match reports a finding only when the value survives the plausibility
// window. The name heuristic never rescues a failing value.
func (d epochDetector) Match(_ Column, v Value) []Match {
	candidate, ok := v.EpochCandidate()
	if !ok {
		return nil
	}
	iso, ok := d.cfg.EpochToISO(candidate)
	if !ok {
		return nil
	}
	return []Match{{Subtype: evidence.SubtypeUnixEpoch, Value: iso, Raw: v.Str}}
}

// EpochToISO disambiguates seconds vs milliseconds, bounds-checks the
// result, and renders the canonical UTC instant. Values whose magnitude
// exceeds the threshold are milliseconds; sub-second precision is dropped.
func (c *Config) EpochToISO(raw int64) (string, bool) {
	sec := raw
	if sec > c.MillisThreshold || sec < -c.MillisThreshold {
		sec /= 1000
	}
	if sec <= c.EpochMin || sec >= c.EpochMax {
		return "", false
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339), true
}

type isoDetector struct{ cfg *Config }

func (d isoDetector) Subtype() string { return evidence.SubtypeISO8601 }

func (d isoDetector) Wants(col Column) bool {
	return col.Class == schema.ClassText || col.Hints.Time
}

// Match reports the whole cell verbatim when it contains an ISO-8601
// date or date-time shape. No reformatting: the finding must equal what
// a re-query of the cell would show.
func (d isoDetector) Match(_ Column, v Value) []Match {
	if !d.cfg.ISO8601.MatchString(v.Str) {
		return nil
	}
	return []Match{{Subtype: evidence.SubtypeISO8601, Value: v.Str}}
}
