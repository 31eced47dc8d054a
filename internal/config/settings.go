package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding individual settings.
const (
	EnvBoopTimeout    = "BOOP_SCRIPT_TIMEOUT"
	EnvBoopDebug      = "BOOP_DEBUG"
	EnvBoopScriptsDir = "BOOP_SCRIPTS_DIR"
)

// DefaultScriptTimeout bounds a single script run.
const DefaultScriptTimeout = 5 * time.Second

// Settings holds the tunable runtime knobs. Zero values are filled with
// defaults by Load.
type Settings struct {
	// ScriptTimeout is the wall-clock budget for one script invocation.
	ScriptTimeout time.Duration `yaml:"script_timeout"`
	// ScriptsDir overrides the default user scripts directory.
	ScriptsDir string `yaml:"scripts_dir"`
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
	// HistoryKeep caps the number of run-history rows retained; 0 keeps all.
	HistoryKeep int `yaml:"history_keep"`
}

// Load reads settings from path (missing file is fine), applies defaults and
// then environment overrides. Env wins over file, file wins over defaults.
func Load(path string) (Settings, error) {
	s := Settings{ScriptTimeout: DefaultScriptTimeout}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return s, fmt.Errorf("read settings: %w", err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings: %w", err)
		}
		if s.ScriptTimeout <= 0 {
			s.ScriptTimeout = DefaultScriptTimeout
		}
	}

	s.applyEnvOverrides()
	return s, nil
}

func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv(EnvBoopTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.ScriptTimeout = d
		}
	}
	if v := os.Getenv(EnvBoopDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Debug = b
		}
	}
	if v := os.Getenv(EnvBoopScriptsDir); v != "" {
		s.ScriptsDir = v
	}
}
