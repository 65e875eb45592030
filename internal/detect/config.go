// Package detect implements the evidence detectors: identifier pattern
// matching, temporal heuristics, and relational column-pair discovery.
// All heuristic vocabulary lives in one immutable Config constructed at
// startup and passed explicitly to every detector.
package detect

import (
	"regexp"
	"strings"
)

// Config carries the compiled patterns, hint vocabularies, and numeric
// bounds used by every detector. Treat instances as immutable once built.
type Config struct {
	Email   *regexp.Regexp
	UUID    *regexp.Regexp
	IPv4    *regexp.Regexp
	URL     *regexp.Regexp
	ISO8601 *regexp.Regexp

	// Relation matches column names that look like entity links,
	// e.g. sender_id, from_user_id, peer_id.
	Relation *regexp.Regexp

	EmailHints []string
	PhoneHints []string
	UUIDHints  []string
	TimeHints  []string

	// SourceRank and DestRank order link-column keywords by strength for
	// the two sides of a relational pair. Earlier is stronger.
	SourceRank []string
	DestRank   []string

	// EpochMin and EpochMax bound plausible Unix timestamps, exclusive
	// on both ends. The narrow 2000..2030 window is a precision/recall
	// trade-off that keeps small IDs and large counters out.
	EpochMin int64
	EpochMax int64

	// MillisThreshold is the magnitude above which an epoch value is
	// read as milliseconds.
	MillisThreshold int64

	// PhoneMinDigits and PhoneMaxDigits bound acceptable phone numbers
	// (E.164 tops out at 15 digits).
	PhoneMinDigits int
	PhoneMaxDigits int

	// MaxRelationPairs bounds how many scored column pairs per table
	// the relational detector keeps.
	MaxRelationPairs int
}

// DefaultConfig returns the standard detector configuration.
func DefaultConfig() *Config {
	return &Config{
		Email:   regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		UUID:    regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}\b`),
		IPv4:    regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		URL:     regexp.MustCompile(`https?://(?:[-\w.~:/?#@&=+]|%[0-9a-fA-F]{2})+`),
		ISO8601: regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?)?\b`),

		Relation: regexp.MustCompile(`(?i)(?:^|_)(user|sender|from|src|author|owner|recipient|to|dst|peer).*_?id$`),

		EmailHints: []string{"email", "e_mail", "mail"},
		PhoneHints: []string{"phone", "tel", "mobile", "msisdn"},
		UUIDHints:  []string{"uuid", "guid"},
		TimeHints:  []string{"time", "date", "timestamp", "created", "modified", "duration"},

		SourceRank: []string{"sender", "from", "src", "author", "owner", "user"},
		DestRank:   []string{"recipient", "to", "dst", "peer", "user"},

		EpochMin:        946684800,  // 2000-01-01
		EpochMax:        1893456000, // 2030-01-01
		MillisThreshold: 1_000_000_000_000,

		PhoneMinDigits: 10,
		PhoneMaxDigits: 15,

		MaxRelationPairs: 2,
	}
}

// Hints is the set of name-derived capability flags for one column,
// computed once and reused by every detector.
type Hints struct {
	Email    bool
	Phone    bool
	UUID     bool
	Time     bool
	Relation bool
}

// HintsFor classifies a column name. Matching is case-insensitive
// substring containment against each hint vocabulary.
func (c *Config) HintsFor(name string) Hints {
	n := strings.ToLower(name)
	return Hints{
		Email:    containsAny(n, c.EmailHints),
		Phone:    containsAny(n, c.PhoneHints),
		UUID:     containsAny(n, c.UUIDHints),
		Time:     containsAny(n, c.TimeHints),
		Relation: c.Relation.MatchString(name),
	}
}

func containsAny(name string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(name, h) {
			return true
		}
	}
	return false
}

// keywordRank scores a column name against an ordered keyword list:
// the first (strongest) matching keyword wins, zero if none match.
func keywordRank(name string, keys []string) int {
	n := strings.ToLower(name)
	for i, k := range keys {
		if strings.Contains(n, k) {
			return len(keys) - i
		}
	}
	return 0
}
