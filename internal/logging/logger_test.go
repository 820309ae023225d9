package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, Level(true, false))
	assert.Equal(t, zerolog.DebugLevel, Level(true, true))
	assert.Equal(t, zerolog.WarnLevel, Level(false, true))
	assert.Equal(t, zerolog.InfoLevel, Level(false, false))
}

func TestNewWritesJSONToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(Options{Console: &buf})
	defer func() { _ = closer() }()

	logger.Info().Str("mode", "work").Msg("interval complete")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "interval complete", entry["message"])
	assert.Equal(t, "work", entry["mode"])
	assert.Contains(t, entry, "time")
}

func TestQuietDropsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Console: &buf, Quiet: true})

	logger.Info().Msg("tick")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("playback failed")
	assert.Contains(t, buf.String(), "playback failed")
}

func TestNewWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", logFileName)
	var buf bytes.Buffer
	logger, closer := New(Options{Console: &buf, FilePath: path})

	logger.Warn().Msg("to file")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, buf.String(), "to file")
}
