package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/platform/tui"
	"github.com/vovakirdan/soarscape/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Start soarscape in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change the difficulty,
Enter to play. After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k   - Navigate modes
  Left/Right    - Change difficulty
  Enter/Space   - Play
  Tab           - High scores
  Q             - Quit

Examples:
  soarscape menu
  soarscape menu --fps 30
  soarscape menu --level-endpoint http://localhost:8080/levels`,
	RunE: runMenu,
}

func init() {
	addLevelFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := tuiLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	difficulty := config.DifficultyMedium

	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			return err
		}

		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		mode, err := registry.Create(menuResult.Mode)
		if err != nil {
			return err
		}
		// Leaving the game, by B after game over or by Q, returns to the menu.
		if err := tui.Run(mode, store, cfg, tui.GameOptions{
			Difficulty:   difficulty,
			Levels:       levelProvider(),
			LevelTimeout: flagLevelTimeout,
			Logger:       logger,
		}); err != nil {
			return err
		}
	}
}
