package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/platform/tui"
	"github.com/vovakirdan/soarscape/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Space/Up/W/Click  - Flap or jump
  R                 - Restart (after game over)
  B/Esc             - Leave (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options (flap only):
  easy    - 200 unit gaps
  medium  - 175 unit gaps
  hard    - 150 unit gaps

Flap layouts come from --level-file or --level-endpoint; without either,
or when generation fails, obstacles are procedural.

Examples:
  soarscape play flap
  soarscape play flap --difficulty hard
  soarscape play flap --level-file ./levels/canyon.yaml
  soarscape play runner --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom mode config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	addLevelFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) error {
	mode, err := parseMode(args[0])
	if err != nil {
		return err
	}
	difficulty, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}

	setConfigPath(mode, flagConfig)
	if err := checkConfig(mode, flagConfig); err != nil {
		return fmt.Errorf("invalid %s config: %w", mode, err)
	}

	m, err := registry.Create(mode)
	if err != nil {
		return err
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(m, store, runtimeConfig(), tui.GameOptions{
		Difficulty:   difficulty,
		Levels:       levelProvider(),
		LevelTimeout: flagLevelTimeout,
		Logger:       logger,
	})
}
