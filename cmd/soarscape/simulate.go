package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soarscape/internal/autopilot"
	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/levels"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/replay"
	"github.com/vovakirdan/soarscape/internal/sim"
)

var (
	flagSimMode       string
	flagSimDifficulty string
	flagSimConfig     string
	flagSimTicks      int
	flagSimRate       int
	flagSimRuns       int
	flagSimRecord     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless sessions with the autopilot",
	Long: `Run sessions without a terminal UI. The autopilot decides every jump.

By default ticks run back to back; --rate throttles them to real time.
Each run uses --seed plus the run index, so results are reproducible.
With --record every run is saved as a replay that 'soarscape replay' can verify.

Examples:
  soarscape simulate
  soarscape simulate --mode runner --runs 10 --ticks 6000
  soarscape simulate --mode flap --difficulty hard --seed 42 --record flap.replay
  soarscape simulate --level-file ./levels/canyon.json`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", string(sim.FlapMode), "Mode to simulate")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	simulateCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom mode config YAML")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Stop each run after this many ticks (0 = until game over)")
	simulateCmd.Flags().IntVar(&flagSimRate, "rate", 0, "Ticks per second (0 = unthrottled)")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of sessions to run")
	simulateCmd.Flags().StringVar(&flagSimRecord, "record", "", "Save each run as a replay file")
	addLevelFlags(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	mode, err := parseMode(flagSimMode)
	if err != nil {
		return err
	}
	difficulty, err := config.ParseDifficulty(flagSimDifficulty)
	if err != nil {
		return err
	}
	modeConfig, err := config.Resolve(string(mode), flagSimConfig)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "soarscape-sim")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var layout sim.LevelLayout
	if mode == sim.FlapMode {
		layout = levels.Fetch(ctx, levelProvider(), difficulty, flagLevelTimeout, logger)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pilot := autopilot.New()
	fmt.Printf("%-4s  %-20s  %-8s  %-8s  %s\n", "Run", "Seed", "Score", "Ticks", "Result")

	for i := 0; i < max(flagSimRuns, 1); i++ {
		settings := sim.Settings{
			Mode:       mode,
			Difficulty: difficulty,
			Layout:     layout,
			Seed:       seed + int64(i),
			Config:     modeConfig,
		}

		var startErr error
		machine := sim.NewMachine(registry.Rules, nil, sim.WithErrorHandler(func(err error) {
			startErr = err
			logger.Error("session error", "err", err)
		}))
		if !machine.Start(settings) {
			return fmt.Errorf("cannot start %s session: %w", mode, startErr)
		}

		rec := replay.NewRecorder(settings)
		loop := &sim.Loop{
			Machine:  machine,
			MaxTicks: flagSimTicks,
			OnFrame:  rec.Wrap(pilot.Decide),
		}
		if flagSimRate > 0 {
			loop.Interval = time.Second / time.Duration(flagSimRate)
		}

		start := time.Now()
		snap, err := loop.Run(ctx)
		if err != nil {
			return err
		}
		logger.Debug("run finished", "run", i+1, "took", time.Since(start), "procedural", snap.Procedural)

		result := "alive"
		if snap.State == sim.StateGameOver {
			result = "crashed"
		}
		fmt.Printf("%-4d  %-20d  %-8d  %-8d  %s\n", i+1, settings.Seed, snap.Score, snap.Ticks, result)

		if flagSimRecord != "" {
			path := recordPath(flagSimRecord, i, flagSimRuns)
			if err := replay.Save(path, rec.Finish(snap)); err != nil {
				return err
			}
			logger.Info("replay saved", "path", path)
		}
	}
	return nil
}

// recordPath numbers replay files when there is more than one run:
// "out.replay" becomes "out-1.replay", "out-2.replay", and so on.
func recordPath(path string, run, runs int) string {
	if runs <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), run+1, ext)
}
