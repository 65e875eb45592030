package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfirlab/goevidence/internal/evidence"
)

func TestRunVerify_RoundTrip(t *testing.T) {
	resetExtractFlags(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "phone.db")
	makeDB(t, dbPath)

	recordsPath := filepath.Join(dir, "phone.ground_truth.json")
	extractOut = recordsPath
	require.NoError(t, runExtract(extractCmd, []string{dbPath}))

	err := runVerify(verifyCmd, []string{dbPath, recordsPath})
	assert.NoError(t, err)
}

func TestRunVerify_TamperedRecordFails(t *testing.T) {
	resetExtractFlags(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "phone.db")
	makeDB(t, dbPath)

	recordsPath := filepath.Join(dir, "phone.ground_truth.json")
	extractOut = recordsPath
	require.NoError(t, runExtract(extractCmd, []string{dbPath}))

	records, err := evidence.ReadFile(recordsPath)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	records[0].Value = "tampered@evil.example"

	f, err := os.Create(recordsPath)
	require.NoError(t, err)
	require.NoError(t, evidence.WriteJSON(f, records))
	require.NoError(t, f.Close())

	err = runVerify(verifyCmd, []string{dbPath, recordsPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed verification")
}

func TestRunVerify_MissingRecordsFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "phone.db")
	makeDB(t, dbPath)

	err := runVerify(verifyCmd, []string{dbPath, filepath.Join(dir, "absent.json")})
	assert.Error(t, err)
}
