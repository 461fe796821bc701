// soarscape is a side-scrolling arcade for the terminal: flap through
// barrier gaps or run and jump over ground obstacles.
//
// Usage:
//
//	soarscape list               - List available modes
//	soarscape play <mode>        - Play a mode
//	soarscape menu               - Pick a mode and difficulty interactively
//	soarscape serve              - Start SSH server for remote play
//	soarscape scores <mode>      - Show high scores for a mode
//	soarscape simulate           - Run headless sessions with the autopilot
//	soarscape replay <file>      - Verify a recorded session
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.soarscape/scores.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/soarscape/internal/games/flap"
	_ "github.com/vovakirdan/soarscape/internal/games/runner"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "soarscape",
	Short: "Soarscape - flap and run in your terminal",
	Long: `Soarscape is a terminal side-scroller with two modes:

  flap    - keep the bird in the air and through the gaps between barriers
  runner  - jump over ground obstacles; the score grows with time

Available commands:
  list      - Show all available modes
  play      - Play a mode directly
  menu      - Interactive mode and difficulty picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run headless sessions with the autopilot
  replay    - Verify a recorded session

Examples:
  soarscape list
  soarscape play flap --difficulty hard
  soarscape menu
  soarscape serve --ssh :2222
  soarscape scores runner
  soarscape simulate --mode runner --runs 5`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.soarscape/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
}
