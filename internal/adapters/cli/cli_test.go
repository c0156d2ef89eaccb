package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
)

func testConfigFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	contentPath, err := filepath.Abs("../../../configs/content.yaml")
	require.NoError(t, err)
	scenarioPath, err := filepath.Abs("../../../configs/scenarios/starter.yaml")
	require.NoError(t, err)

	body := fmt.Sprintf(`
database:
  type: sqlite
  path: %s
simulation:
  tick_interval: 1ms
  content_path: %s
  scenario_path: %s
logging:
  level: error
  output: stderr
metrics:
  enabled: false
stream:
  enabled: false
daemon:
  pid_file: %s
  shutdown_timeout: 1s
`, filepath.Join(dir, "cardquest.db"), contentPath, scenarioPath, filepath.Join(dir, "cardquest.pid"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunSimulation_PersistsRunAndJournal(t *testing.T) {
	path := testConfigFile(t)
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := RunSimulation(ctx, cfg, RunOptions{
		Session:  SessionOptions{Persist: true},
		MaxTicks: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", summary.Status)
	assert.Equal(t, 5, summary.Ticks)
	assert.Greater(t, summary.EventCount, 0)

	out, err := execute(t, "--config", path, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, summary.ID)
	assert.Contains(t, out, "starter")

	out, err = execute(t, "--config", path, "runs", "show", summary.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Ticks:      5")

	out, err = execute(t, "--config", path, "events", "tail", summary.ID, "--type", "card_spawned")
	require.NoError(t, err)
	assert.Contains(t, out, "card_spawned")
	assert.NotContains(t, out, "hero_assigned")
}

func TestRunSimulation_WithoutPersistence(t *testing.T) {
	cfg, err := config.LoadConfig(testConfigFile(t))
	require.NoError(t, err)

	summary, err := RunSimulation(context.Background(), cfg, RunOptions{
		Session:  SessionOptions{Persist: false, Seed: 7},
		MaxTicks: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.Seed)
	assert.Equal(t, 3, summary.Ticks)
}

func TestRunSimulation_StopsOnCancel(t *testing.T) {
	cfg, err := config.LoadConfig(testConfigFile(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	summary, err := RunSimulation(ctx, cfg, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "stopped", summary.Status)
}

func TestRunSimulation_RefusesSecondInstance(t *testing.T) {
	cfg, err := config.LoadConfig(testConfigFile(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.Daemon.PIDFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o644))

	_, err = RunSimulation(context.Background(), cfg, RunOptions{Lock: true, MaxTicks: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestContentValidate(t *testing.T) {
	out, err := execute(t, "content", "validate", "../../../configs/content.yaml",
		"--scenario", "../../../configs/scenarios/starter.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "items:")
	assert.Contains(t, out, "Scenario starter: 3 heroes, 4 cards")
}

func TestContentValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "content", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEventsTail_UnknownRun(t *testing.T) {
	out, err := execute(t, "--config", testConfigFile(t), "events", "tail", "run-unknown")
	require.NoError(t, err)
	assert.Contains(t, out, "No events for run run-unknown")
}

func TestRunsShow_UnknownRun(t *testing.T) {
	_, err := execute(t, "--config", testConfigFile(t), "runs", "show", "run-unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
