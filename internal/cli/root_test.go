package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusclock/internal/clock"
	"focusclock/internal/core/model"
	"focusclock/internal/history"
	"focusclock/internal/storage"
)

type paths struct {
	config  string
	history string
	log     string
}

func tempPaths(t *testing.T) paths {
	t.Helper()
	dir := t.TempDir()
	return paths{
		config:  filepath.Join(dir, "settings.yaml"),
		history: filepath.Join(dir, "history.yaml"),
		log:     filepath.Join(dir, "logs", "focusclock.log"),
	}
}

func (p paths) args(extra ...string) []string {
	return append([]string{"--config", p.config, "--history", p.history, "--log-file", p.log}, extra...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.2.0 (commit: abc, built: today)", formatVersion(BuildInfo{Version: "1.2.0", Commit: "abc", Date: "today"}))
}

func TestSettingsPrintsDefaults(t *testing.T) {
	p := tempPaths(t)

	out, err := execute(t, p.args("settings")...)
	require.NoError(t, err)
	assert.Contains(t, out, "# "+p.config)
	assert.Contains(t, out, "work_minutes: 25")
	assert.Contains(t, out, "short_break_minutes: 5")
	assert.Contains(t, out, "long_break_minutes: 15")
}

func TestSettingsSetWritesOnlyChangedFlags(t *testing.T) {
	p := tempPaths(t)

	_, err := execute(t, p.args("settings", "set", "--work", "30", "--sound=false")...)
	require.NoError(t, err)

	settings, err := storage.LoadSettings(p.config)
	require.NoError(t, err)
	assert.Equal(t, 30, settings.WorkDuration)
	assert.False(t, settings.SoundEnabled)
	assert.Equal(t, 5, settings.ShortBreakDuration)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, 0.5, settings.Volume)
}

func TestSettingsSetRejectsInvalidValues(t *testing.T) {
	p := tempPaths(t)

	_, err := execute(t, p.args("settings", "set", "--interval", "0")...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrInvalidSettings))
}

func TestConfigPathFromEnvironment(t *testing.T) {
	p := tempPaths(t)
	t.Setenv("FOCUSCLOCK_CONFIG", p.config)

	out, err := execute(t, "--history", p.history, "--log-file", p.log, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+p.config)
}

func TestHistoryEmpty(t *testing.T) {
	p := tempPaths(t)

	out, err := execute(t, p.args("history")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Today: 0 sessions, 0 pomodoros, 0 breaks")
}

func TestHistoryListsRecentSessions(t *testing.T) {
	p := tempPaths(t)
	journal, err := history.Open(p.history, clock.Real{})
	require.NoError(t, err)
	now := time.Now()
	_, err = journal.Add(history.Entry{Mode: model.ModeWork, Planned: 25 * time.Minute, Elapsed: 25 * time.Minute, Note: "draft", At: now})
	require.NoError(t, err)
	_, err = journal.Add(history.Entry{Mode: model.ModeShortBreak, Planned: 5 * time.Minute, Elapsed: 2 * time.Minute, Skipped: true, At: now.Add(time.Second)})
	require.NoError(t, err)

	out, err := execute(t, p.args("history", "--limit", "5")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Today: 2 sessions, 1 pomodoros, 1 breaks")
	assert.Contains(t, out, "Focus time: 25m0s")
	assert.Contains(t, out, "25:00 / 25:00  done  draft")
	assert.Contains(t, out, "02:00 / 05:00  skipped")
}

func TestHeadlessRunsOnePomodoro(t *testing.T) {
	p := tempPaths(t)
	_, err := execute(t, p.args("settings", "set", "--work", "1")...)
	require.NoError(t, err)

	out, err := execute(t, p.args("--headless", "--cycles", "1", "--tick", "1ms", "--note", "draft")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Focus 01:00")
	assert.Contains(t, out, "Focus finished, 1 pomodoro done")
	assert.Contains(t, out, "Work session complete: Time for a break.")
	assert.Contains(t, out, "\a")

	journal, err := history.Open(p.history, clock.Real{})
	require.NoError(t, err)
	records := journal.Records()
	require.Len(t, records, 1)
	assert.Equal(t, model.ModeWork, records[0].Mode)
	assert.Equal(t, time.Minute, records[0].Elapsed())
	assert.Equal(t, "draft", records[0].Note)
}
