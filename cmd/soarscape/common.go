package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/games/flap"
	"github.com/vovakirdan/soarscape/internal/games/runner"
	"github.com/vovakirdan/soarscape/internal/levels"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/sim"
	"github.com/vovakirdan/soarscape/internal/storage"
)

// Level generation flags, shared by play, menu, serve and simulate.
var (
	flagLevelFile     string
	flagLevelEndpoint string
	flagLevelTimeout  time.Duration
)

func addLevelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Flap layout file (JSON or YAML)")
	cmd.Flags().StringVar(&flagLevelEndpoint, "level-endpoint", "", "URL of a level generation service")
	cmd.Flags().DurationVar(&flagLevelTimeout, "level-timeout", levels.DefaultTimeout, "Give up on level generation after this long")
}

// levelProvider returns the provider selected by the level flags, or nil for procedural play.
func levelProvider() levels.Provider {
	switch {
	case flagLevelFile != "":
		return levels.FileProvider{Path: flagLevelFile}
	case flagLevelEndpoint != "":
		return &levels.HTTPProvider{Endpoint: flagLevelEndpoint}
	default:
		return nil
	}
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// tuiLogger returns a logger for commands that own the terminal.
// Logs go to ~/.soarscape/soarscape.log; the returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "soarscape"), func() {}
	}
	dir := filepath.Join(home, ".soarscape")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, "soarscape"), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "soarscape.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, "soarscape"), func() {}
	}
	return newLogger(f, "soarscape"), func() { f.Close() }
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database, degrading to no persistence on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// parseMode checks that id names a registered mode.
func parseMode(id string) (sim.GameMode, error) {
	mode := sim.GameMode(id)
	if !registry.Exists(mode) {
		return "", fmt.Errorf("unknown mode %q (run 'soarscape list' to see available modes)", id)
	}
	return mode, nil
}

// setConfigPath points mode at a custom YAML config.
func setConfigPath(mode sim.GameMode, path string) {
	switch mode {
	case sim.FlapMode:
		flap.SetConfigPath(path)
	case sim.RunnerMode:
		runner.SetConfigPath(path)
	}
}

// checkConfig loads and validates the config for mode so problems surface
// before the terminal is taken over.
func checkConfig(mode sim.GameMode, path string) error {
	switch mode {
	case sim.FlapMode:
		cfg, err := config.LoadFlap(path)
		if err != nil {
			return err
		}
		_, err = flap.NewRules(cfg, config.DifficultyMedium)
		return err
	case sim.RunnerMode:
		cfg, err := config.LoadRunner(path)
		if err != nil {
			return err
		}
		_, err = runner.NewRules(cfg)
		return err
	}
	return nil
}
