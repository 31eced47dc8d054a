package cmd

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/builtins"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/config"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/db"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/engine"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/history"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/loader"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/logging"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/sandbox"
)

// appEnv bundles the wired-up application for a single command invocation.
type appEnv struct {
	settings config.Settings
	log      *zap.Logger
	registry *registry.Registry
	runner   *sandbox.Runner
	engine   *engine.Engine
	store    *history.Store
	conn     *sql.DB
	report   registry.LoadReport
}

// openEnv loads settings and scripts and wires the engine. withHistory
// controls whether the run-history database is opened; read-only commands
// skip it.
func openEnv(withHistory bool) (*appEnv, error) {
	settingsPath, err := config.SettingsPath()
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(settings.Debug)
	if err != nil {
		return nil, err
	}

	reg := registry.New(log)
	sources, err := builtins.Sources()
	if err != nil {
		return nil, err
	}
	scriptsDir, err := userScriptsDir(settings)
	if err != nil {
		return nil, err
	}
	userSources, err := loader.LoadDir(scriptsDir)
	if err != nil {
		return nil, err
	}
	// User scripts load after builtins so an edited copy shadows the
	// embedded one.
	report := reg.LoadAll(append(sources, userSources...))

	env := &appEnv{
		settings: settings,
		log:      log,
		registry: reg,
		runner:   sandbox.New(settings.ScriptTimeout, log),
		report:   report,
	}

	var rec engine.Recorder = engine.NopRecorder{}
	if withHistory {
		conn, err := db.InitDB()
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		env.conn = conn
		env.store = history.NewStore(conn)
		rec = env.store
	}
	env.engine = engine.New(reg, env.runner, rec, log)
	return env, nil
}

func (e *appEnv) close() {
	if e.conn != nil {
		_ = e.conn.Close()
	}
	_ = e.log.Sync()
}

// userScriptsDir resolves the directory user scripts live in, honoring the
// settings override.
func userScriptsDir(settings config.Settings) (string, error) {
	if settings.ScriptsDir != "" {
		return settings.ScriptsDir, nil
	}
	return config.ScriptsDir()
}
