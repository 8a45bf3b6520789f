package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgate/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best single games",
	Long: `Display the best individual games recorded on this machine.

Examples:
  flapgate scores
  flapgate scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening player database: %w", err)
	}
	defer store.Close()

	return writeScores(os.Stdout, store, flagScoresLimit)
}

// writeScores prints the best games and the overall best score.
func writeScores(w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flapgate play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-12s  %-8d  %s\n", i+1, entry.Username, entry.Score, dateStr)
	}

	highScore, err := store.HighScore()
	if err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d\n", highScore)
	}
	return nil
}
