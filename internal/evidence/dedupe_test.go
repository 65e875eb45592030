package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	email := Record{EntityType: Identifier, Subtype: SubtypeEmail, Value: "a@b.com", Table: "m", RowID: "1", Column: "body"}
	epoch := Record{EntityType: Temporal, Subtype: SubtypeUnixEpoch, Value: "2023-11-14T22:13:20Z", Table: "m", RowID: "1", Column: "sent_at"}
	sameValueOtherRow := email
	sameValueOtherRow.RowID = "2"

	in := []Record{email, epoch, email, sameValueOtherRow, epoch}
	out := Dedupe(in)

	assert.Equal(t, []Record{email, epoch, sameValueOtherRow}, out, "first-seen order preserved")
}

func TestDedupe_DistinctSubtypesOnSameCellSurvive(t *testing.T) {
	// A URL embedding an IP: both detectors fire on the same cell and
	// both findings must survive dedup.
	url := Record{EntityType: Identifier, Subtype: SubtypeURL, Value: "http://10.0.0.1/x", Table: "m", RowID: "1", Column: "body"}
	ip := Record{EntityType: Identifier, Subtype: SubtypeIPv4, Value: "10.0.0.1", Table: "m", RowID: "1", Column: "body"}

	out := Dedupe([]Record{url, ip})
	assert.Len(t, out, 2)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestCountByClass(t *testing.T) {
	records := []Record{
		{EntityType: Identifier},
		{EntityType: Identifier},
		{EntityType: Temporal},
		{EntityType: Relational},
	}

	counts := CountByClass(records)
	assert.Equal(t, 2, counts[Identifier])
	assert.Equal(t, 1, counts[Temporal])
	assert.Equal(t, 1, counts[Relational])
}
