package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is searched for from the working directory upwards.
	ConfigFileName = "monkey.yml"

	EnvConfig   = "MONKEY_CONFIG"
	EnvHome     = "MONKEY_HOME"
	EnvLogLevel = "MONKEY_LOG_LEVEL"
)

// ErrConfigNotFound reports that no monkey.yml exists from the start
// directory upwards.
var ErrConfigNotFound = errors.New("config: monkey.yml not found")

// Config represents the parsed contents of monkey.yml.
type Config struct {
	Path   string       `yaml:"-"`
	REPL   REPLConfig   `yaml:"repl"`
	Log    LogConfig    `yaml:"log"`
	Limits LimitsConfig `yaml:"limits"`
}

type REPLConfig struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	// History is relative to MONKEY_HOME unless absolute. Empty disables it.
	History string `yaml:"history"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type LimitsConfig struct {
	// MaxCallDepth bounds nested function calls; 0 disables the guard.
	MaxCallDepth int `yaml:"max_call_depth"`
}

// DefaultConfig is used when no monkey.yml is found. Loaded files are
// decoded over it, so omitted keys keep these values.
func DefaultConfig() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:       ">> ",
			Continuation: ".. ",
			History:      ".monkey_history",
		},
		Log:    LogConfig{Level: "info"},
		Limits: LimitsConfig{MaxCallDepth: 10000},
	}
}

// ConfigValidationError aggregates config validation failures.
type ConfigValidationError struct {
	Issues []string
}

func (e *ConfigValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses monkey.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := decodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

var validLogLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
	"fatal": {},
}

// Validate collects every problem rather than stopping at the first.
func (c *Config) Validate() error {
	var errs ConfigValidationError
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	if c.REPL.Continuation == "" {
		errs.Issues = append(errs.Issues, "repl.continuation must not be empty")
	}
	if _, ok := validLogLevels[strings.ToLower(c.Log.Level)]; !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level %q is not one of trace, debug, info, warn, error, fatal", c.Log.Level))
	}
	if c.Limits.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_call_depth must be >= 0, got %d", c.Limits.MaxCallDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath resolves the REPL history file against home.
func (c *Config) HistoryPath(home string) string {
	history := strings.TrimSpace(c.REPL.History)
	if history == "" {
		return ""
	}
	if filepath.IsAbs(history) {
		return history
	}
	return filepath.Join(home, history)
}

// ResolveConfig picks the config file: an explicit path wins, then
// MONKEY_CONFIG, then a monkey.yml found from start upwards. With none of
// those the defaults are returned.
func ResolveConfig(explicit, start string) (*Config, error) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path == "" {
		found, err := FindConfig(start)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return DefaultConfig(), nil
			}
			return nil, err
		}
		path = found
	}
	return LoadConfig(path)
}

// FindConfig walks from start towards the filesystem root looking for
// monkey.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveHome returns MONKEY_HOME, defaulting to ~/.monkey.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve %s %q: %w", EnvHome, home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".monkey"), nil
}
