package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores and play statistics for the specified mode.

Examples:
  soarscape scores flap
  soarscape scores runner --limit 20
  soarscape scores flap --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history and best score for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode, err := parseMode(args[0])
	if err != nil {
		return err
	}
	m, err := registry.Create(mode)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", m.Title())
		return nil
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", m.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'soarscape play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "Rank", "Score", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "----", "-----", "----------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-10s  %s\n", i+1, entry.Score, entry.Difficulty.Title(), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.LoadBest(mode); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetModeStats(mode); err == nil {
		fmt.Printf("Games: %d  Average: %.1f  Last played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
