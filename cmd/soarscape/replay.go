package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/replay"
)

var flagReplayConfig string

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify a recorded session",
	Long: `Load a replay written by 'soarscape simulate --record' and run it again.

The session is deterministic: the same mode, difficulty, seed, layout, mode
config and jump ticks must reproduce the recorded score and tick count.
Replays carry the mode config they were recorded with; --config is only
used for recordings that have none.

Examples:
  soarscape replay flap.replay
  soarscape replay runner.replay --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayConfig, "config", "", "Mode config YAML for recordings that carry none")
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	setConfigPath(rec.Mode, flagReplayConfig)

	fmt.Printf("Mode:       %s\n", rec.Mode)
	fmt.Printf("Difficulty: %s\n", rec.Difficulty.Title())
	fmt.Printf("Seed:       %d\n", rec.Seed)
	fmt.Printf("Layout:     %d patterns\n", len(rec.Layout))
	fmt.Printf("Jumps:      %d\n", len(rec.Jumps))
	if len(rec.Config) > 0 {
		fmt.Printf("Config:     recorded (%d bytes)\n", len(rec.Config))
	} else {
		fmt.Println("Config:     local")
	}
	fmt.Printf("Recorded:   score %d after %d ticks\n", rec.Score, rec.Ticks)

	if err := replay.Verify(rec, registry.Rules); err != nil {
		return err
	}
	fmt.Println("Replay verified.")
	return nil
}
