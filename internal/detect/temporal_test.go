package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfirlab/goevidence/internal/evidence"
)

func TestEpochDetector(t *testing.T) {
	d := TemporalDetectors(DefaultConfig())[0]

	tests := []struct {
		name     string
		input    any
		expected string // "" means no finding
	}{
		{
			name:     "seconds",
			input:    int64(1700000000),
			expected: "2023-11-14T22:13:20Z",
		},
		{
			name:     "milliseconds collapse to the same instant",
			input:    int64(1700000000000),
			expected: "2023-11-14T22:13:20Z",
		},
		{
			name:     "digit string",
			input:    "1700000000",
			expected: "2023-11-14T22:13:20Z",
		},
		{
			name:     "float truncates sub-second precision",
			input:    float64(1700000000.75),
			expected: "2023-11-14T22:13:20Z",
		},
		{
			name:     "lower bound is exclusive",
			input:    int64(946684800),
			expected: "",
		},
		{
			name:     "just above lower bound",
			input:    int64(946684801),
			expected: "2000-01-01T00:00:01Z",
		},
		{
			name:     "upper bound is exclusive",
			input:    int64(1893456000),
			expected: "",
		},
		{
			name:     "small id rejected",
			input:    int64(42),
			expected: "",
		},
		{
			name:     "large counter rejected after millis division",
			input:    int64(9_000_000_000_000),
			expected: "",
		},
		{
			name:     "non-numeric text",
			input:    "soon",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := d.Match(intColumn("created_at"), NewValue(tt.input))
			if tt.expected == "" {
				assert.Empty(t, matches)
				return
			}
			require.Len(t, matches, 1)
			assert.Equal(t, evidence.SubtypeUnixEpoch, matches[0].Subtype)
			assert.Equal(t, tt.expected, matches[0].Value)
			assert.Equal(t, FormatValue(tt.input), matches[0].Raw, "raw must preserve the original cell")
		})
	}
}

func TestEpochDetectorWants(t *testing.T) {
	d := TemporalDetectors(DefaultConfig())[0]

	assert.True(t, d.Wants(intColumn("size_bytes")), "integer columns always scanned")
	assert.True(t, d.Wants(textColumn("created_at")), "time-named text column scanned")
	assert.False(t, d.Wants(textColumn("body")), "plain text column not scanned for epochs")
}

func TestISODetector(t *testing.T) {
	d := TemporalDetectors(DefaultConfig())[1]

	tests := []struct {
		name  string
		input string
		found bool
	}{
		{"date only", "2024-03-01", true},
		{"space separated datetime", "2024-03-01 09:30:00", true},
		{"t separated with zone", "2024-03-01T09:30:00+02:00", true},
		{"zulu with fraction", "2024-03-01T09:30:00.123Z", true},
		{"embedded in sentence", "seen on 2024-03-01 near the office", true},
		{"not a date", "version 12.4.1", false},
		{"digits without dashes", "20240301", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := d.Match(textColumn("note"), NewValue(tt.input))
			if !tt.found {
				assert.Empty(t, matches)
				return
			}
			require.Len(t, matches, 1)
			assert.Equal(t, evidence.SubtypeISO8601, matches[0].Subtype)
			assert.Equal(t, tt.input, matches[0].Value, "cell is reported verbatim")
		})
	}
}
