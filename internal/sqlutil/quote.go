// Package sqlutil provides SQL identifier utilities shared by the
// introspection and streaming layers.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteANSI quotes an identifier with double quotes (SQLite, standard SQL).
// Embedded double quotes are escaped by doubling them.
// Example: "my_table" -> "\"my_table\""
func QuoteANSI(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteBacktick quotes an identifier with backticks (MySQL).
// Embedded backticks are escaped by doubling them.
// Example: "my_table" -> "`my_table`"
func QuoteBacktick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex matches conservative identifier characters.
// Forensic databases carry untrusted table and column names, so anything
// outside this set is rejected before it reaches a query. Spaces, dots and
// dashes do occur in app-generated table names and are safe once quoted.
var validIdentifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_ .-]+$`)

// IsValidIdentifier checks whether name is safe to interpolate as a quoted
// identifier. Quoting handles the escaping; this is a defense-in-depth
// filter against control characters and quote-breaking input.
func IsValidIdentifier(name string) bool {
	return name != "" && validIdentifierRegex.MatchString(name)
}

// InvalidIdentifierError is returned when an identifier contains characters
// outside the allowed set.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name
}
