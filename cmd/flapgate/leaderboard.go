package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgate/internal/storage"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top players",
	Long: fmt.Sprintf(`Display the top %d players by high score.

Examples:
  flapgate leaderboard
  flapgate leaderboard --db ./flapgate.db`, storage.LeaderboardSize),
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func runLeaderboard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening player database: %w", err)
	}
	defer store.Close()

	return writeLeaderboard(os.Stdout, store)
}

// writeLeaderboard prints the leaderboard as a plain table.
func writeLeaderboard(w io.Writer, store *storage.Store) error {
	entries, err := store.Leaderboard(storage.LeaderboardSize)
	if err != nil {
		return fmt.Errorf("error retrieving leaderboard: %w", err)
	}

	fmt.Fprintln(w, "Leaderboard")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No players yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Best", "Games")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %s\n", "----", "------", "----", "-----")
	for _, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-12s  %-8d  %d\n", e.Rank, e.Username, e.HighScore, e.GamesPlayed)
	}
	return nil
}
