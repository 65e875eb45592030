package detect

import (
	"strings"

	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/schema"
)

// Match is one normalized detector hit on a cell.
type Match struct {
	Subtype string
	Value   string
	Raw     string // original cell value, set only when Value is a normalization
}

// ValueDetector is the uniform per-cell detection contract. Wants gates
// which columns are streamed at all; Match inspects individual cells.
// Detectors are independent: several may fire on the same cell.
type ValueDetector interface {
	Subtype() string
	Wants(col Column) bool
	Match(col Column, v Value) []Match
}

// identifierGate is shared by all identifier detectors: text columns are
// always scanned, and the hint vocabulary pulls in name-flagged columns
// regardless of their declared type.
func identifierGate(col Column) bool {
	return col.Class == schema.ClassText || col.Hints.Email || col.Hints.Phone || col.Hints.UUID
}

// IdentifierDetectors returns the identifier detector set in its fixed
// reporting order.
func IdentifierDetectors(cfg *Config) []ValueDetector {
	return []ValueDetector{
		emailDetector{cfg},
		uuidDetector{cfg},
		phoneDetector{cfg},
		ipv4Detector{cfg},
		urlDetector{cfg},
	}
}

type emailDetector struct{ cfg *Config }

func (d emailDetector) Subtype() string       { return evidence.SubtypeEmail }
func (d emailDetector) Wants(col Column) bool { return identifierGate(col) }

func (d emailDetector) Match(_ Column, v Value) []Match {
	var out []Match
	for _, m := range d.cfg.Email.FindAllString(v.Str, -1) {
		out = append(out, Match{Subtype: evidence.SubtypeEmail, Value: m})
	}
	return out
}

type uuidDetector struct{ cfg *Config }

func (d uuidDetector) Subtype() string       { return evidence.SubtypeUUID }
func (d uuidDetector) Wants(col Column) bool { return identifierGate(col) }

// UUIDs are case-normalized to lowercase on output.
func (d uuidDetector) Match(_ Column, v Value) []Match {
	var out []Match
	for _, m := range d.cfg.UUID.FindAllString(v.Str, -1) {
		out = append(out, Match{Subtype: evidence.SubtypeUUID, Value: strings.ToLower(m)})
	}
	return out
}

type phoneDetector struct{ cfg *Config }

func (d phoneDetector) Subtype() string       { return evidence.SubtypePhone }
func (d phoneDetector) Wants(col Column) bool { return identifierGate(col) }

// Match casts a broad net: any value with a digit is probed unless the
// column name already marks it as a phone column. The strict digit-count
// filter then discards everything implausible. Long numeric IDs inside
// the window remain accepted imprecision.
func (d phoneDetector) Match(col Column, v Value) []Match {
	if !col.Hints.Phone && !containsDigit(v.Str) {
		return nil
	}
	normalized, ok := d.cfg.NormalizePhone(v.Str)
	if !ok {
		return nil
	}
	return []Match{{Subtype: evidence.SubtypePhone, Value: normalized}}
}

// NormalizePhone strips everything but digits and accepts the result only
// when the digit count is plausible for a phone number. The normalized
// form is "+" followed by the digits.
func (c *Config) NormalizePhone(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < c.PhoneMinDigits || len(digits) > c.PhoneMaxDigits {
		return "", false
	}
	return "+" + digits, true
}

type ipv4Detector struct{ cfg *Config }

func (d ipv4Detector) Subtype() string       { return evidence.SubtypeIPv4 }
func (d ipv4Detector) Wants(col Column) bool { return identifierGate(col) }

func (d ipv4Detector) Match(_ Column, v Value) []Match {
	var out []Match
	for _, m := range d.cfg.IPv4.FindAllString(v.Str, -1) {
		out = append(out, Match{Subtype: evidence.SubtypeIPv4, Value: m})
	}
	return out
}

type urlDetector struct{ cfg *Config }

func (d urlDetector) Subtype() string       { return evidence.SubtypeURL }
func (d urlDetector) Wants(col Column) bool { return identifierGate(col) }

func (d urlDetector) Match(_ Column, v Value) []Match {
	var out []Match
	for _, m := range d.cfg.URL.FindAllString(v.Str, -1) {
		out = append(out, Match{Subtype: evidence.SubtypeURL, Value: m})
	}
	return out
}
