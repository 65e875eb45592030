// Package evidence defines the provenance-tagged record produced by the
// extraction engine, plus deduplication and serialization.
package evidence

// Class is the top-level evidence class of a record.
type Class string

const (
	Identifier Class = "Identifier"
	Temporal   Class = "Temporal"
	Relational Class = "Relational"
)

// Identifier subtypes.
const (
	SubtypeEmail = "Email"
	SubtypeUUID  = "UUID"
	SubtypePhone = "Phone"
	SubtypeIPv4  = "IPv4"
	SubtypeURL   = "URL"
)

// Temporal subtypes. Relational subtypes are synthesized per column pair
// as "<colA>-><colB>".
const (
	SubtypeUnixEpoch = "UnixEpoch"
	SubtypeISO8601   = "ISO8601"
)

// Record is one unit of extracted forensic evidence with full provenance.
// Field names are a stable external contract; downstream scorers match on
// them verbatim. RowID is always a string so composite identities survive
// serialization without precision loss.
type Record struct {
	EntityType Class  `json:"entity_type"`
	Subtype    string `json:"subtype"`
	Value      string `json:"value"`
	Raw        string `json:"raw,omitempty"` // original cell value for normalized findings
	Table      string `json:"table"`
	RowID      string `json:"rowid"`
	Column     string `json:"column"` // single name, or "a,b" for relational pairs
}

// keySep separates key fields; it cannot occur in any field because it is
// a control character.
const keySep = "\x1f"

// Key returns the full six-field identity used for deduplication. Raw is
// deliberately excluded: it is an audit attachment, not identity.
func (r *Record) Key() string {
	return string(r.EntityType) + keySep +
		r.Subtype + keySep +
		r.Value + keySep +
		r.Table + keySep +
		r.RowID + keySep +
		r.Column
}
