package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	modelPath := filepath.Join(dir, "fit_predictor.json")
	require.NoError(t, os.WriteFile(modelPath, []byte(`{"weights":[-4,-3,-2],"bias":4}`), 0o644))

	t.Setenv("BURNOUT_DB_PATH", filepath.Join(dir, "burnout.db"))
	t.Setenv("BURNOUT_VAULT_PATH", filepath.Join(dir, "vault"))
	t.Setenv("BURNOUT_MODEL_PATH", modelPath)
	t.Setenv("BURNOUT_API_TOKENS", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// flag values persist on the package-level commands between runs
	actor, jsonOut, clearYes = "local", false, false
	scoreMood, scoreSleep, scoreJournal = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--env-file", ""))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScoreHistoryClear(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "score", "--actor", "alice", "--mood", "Sad", "--sleep", "5", "--journal", "sad and tired")
	require.NoError(t, err)
	assert.Contains(t, out, "Prediction: Unfit")
	assert.Contains(t, out, "Burnout score: 50 (Negative)")
	assert.Contains(t, out, "Breathing exercise")

	out, err = execute(t, "history", "--actor", "alice", "--json")
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Sad", records[0]["mood"])

	out, err = execute(t, "trend", "--actor", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "entries=1")

	_, err = execute(t, "clear", "--actor", "alice")
	assert.Error(t, err)

	out, err = execute(t, "clear", "--actor", "alice", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 entries")

	out, err = execute(t, "history", "--actor", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries for alice")
}

func TestScoreIncomplete(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "score", "--mood", "Happy")
	assert.Error(t, err)
}

func TestComposeCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "compose", "Rahul Mehta")
	require.NoError(t, err)
	assert.Contains(t, out, "To: rahul.hr@example.com")
	assert.Contains(t, out, "Hi Rahul,")
	assert.Contains(t, out, "Draft saved to Handoffs")

	out, err = execute(t, "contacts")
	require.NoError(t, err)
	assert.Contains(t, out, "Dr. Kabir Das (Counsellor)")
}
