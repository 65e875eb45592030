package detect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dfirlab/goevidence/internal/schema"
)

// Column is the per-column context detectors see: the name, the
// normalized storage class, and the precomputed name hints.
type Column struct {
	Name  string
	Class schema.TypeClass
	Hints Hints
}

// Value is one non-null cell, carrying both the raw driver value and its
// canonical string form.
type Value struct {
	Raw any
	Str string
}

// NewValue converts a driver-scanned cell into a Value. Drivers disagree
// about concrete types (the MySQL driver hands back []byte for text), so
// everything is folded into one string form here and nowhere else.
func NewValue(raw any) Value {
	return Value{Raw: raw, Str: FormatValue(raw)}
}

// FormatValue renders a driver value as its canonical string form.
func FormatValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// EpochCandidate extracts an integer epoch candidate from the value:
// integer types pass through, floats truncate, and digit strings parse.
// Anything else is not a candidate.
func (v Value) EpochCandidate() (int64, bool) {
	switch n := v.Raw.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case string, []byte:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// containsDigit reports whether s holds any ASCII digit.
func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
