package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
repl:
  prompt: "monkey> "
log:
  level: debug
limits:
  max_call_depth: 0
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "monkey> ", cfg.REPL.Prompt)
	assert.Equal(t, ".. ", cfg.REPL.Continuation, "omitted keys keep defaults")
	assert.Equal(t, ".monkey_history", cfg.REPL.History)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0, cfg.Limits.MaxCallDepth)
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	want := DefaultConfig()
	want.Path = path
	assert.Equal(t, want, cfg)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "repl:\n  colour: true\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadConfigValidationCollectsIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
repl:
  prompt: ""
log:
  level: loud
limits:
  max_call_depth: -1
`)
	_, err := LoadConfig(path)
	var verr *ConfigValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"repl.prompt must not be empty",
		`log.level "loud" is not one of trace, debug, info, warn, error, fatal`,
		"limits.max_call_depth must be >= 0, got -1",
	}, verr.Issues)
	assert.Contains(t, err.Error(), "config validation failed:\n- repl.prompt must not be empty")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfigWalksUpwards(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	writeFile(t, path, "log:\n  level: warn\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestResolveConfigPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "log:\n  level: warn\n")
	envPath := filepath.Join(root, "env.yml")
	writeFile(t, envPath, "log:\n  level: error\n")
	flagPath := filepath.Join(root, "flag.yml")
	writeFile(t, flagPath, "log:\n  level: debug\n")

	t.Setenv(EnvConfig, "")
	cfg, err := ResolveConfig("", root)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	t.Setenv(EnvConfig, envPath)
	cfg, err = ResolveConfig("", root)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)

	cfg, err = ResolveConfig(flagPath, root)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestHistoryPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/home/m", ".monkey_history"), cfg.HistoryPath("/home/m"))
	cfg.REPL.History = "/tmp/hist"
	assert.Equal(t, "/tmp/hist", cfg.HistoryPath("/home/m"))
	cfg.REPL.History = "  "
	assert.Equal(t, "", cfg.HistoryPath("/home/m"))
}

func TestResolveHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	got, err := ResolveHome()
	require.NoError(t, err)
	assert.Equal(t, home, got)

	t.Setenv(EnvHome, "")
	t.Setenv("HOME", home)
	got, err = ResolveHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".monkey"), got)
}
