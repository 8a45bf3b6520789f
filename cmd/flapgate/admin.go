package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgate/internal/storage"
)

var flagAdminEmails bool

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Operator tools",
	Long: `Operator tools for the player database.

These commands show unmasked player identities. Access is limited to
whoever can read the database file.`,
}

var adminPlayersCmd = &cobra.Command{
	Use:   "players",
	Short: "List every player with totals",
	Long: `List every registered player, including those who never finished a game,
with the total number of players and games played.

Examples:
  flapgate admin players
  flapgate admin players --emails > emails.txt`,
	Args: cobra.NoArgs,
	RunE: runAdminPlayers,
}

func init() {
	adminPlayersCmd.Flags().BoolVar(&flagAdminEmails, "emails", false, "Print only the player IDs, one per line")
	adminCmd.AddCommand(adminPlayersCmd)
}

func runAdminPlayers(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening player database: %w", err)
	}
	defer store.Close()

	if flagAdminEmails {
		return writeEmails(os.Stdout, store)
	}
	return writePlayers(os.Stdout, store)
}

// writePlayers prints the totals and the full roster.
func writePlayers(w io.Writer, store *storage.Store) error {
	players, err := store.Players()
	if err != nil {
		return fmt.Errorf("error retrieving players: %w", err)
	}

	games := 0
	for _, p := range players {
		games += p.GamesPlayed
	}

	fmt.Fprintf(w, "Players: %d\n", len(players))
	fmt.Fprintf(w, "Games played: %d\n", games)
	fmt.Fprintln(w)

	if len(players) == 0 {
		fmt.Fprintln(w, "No players yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-32s  %-8s  %-6s  %s\n", "Player", "Best", "Games", "Joined")
	fmt.Fprintf(w, "  %-32s  %-8s  %-6s  %s\n", "------", "----", "-----", "------")
	for _, p := range players {
		fmt.Fprintf(w, "  %-32s  %-8d  %-6d  %s\n", p.ID, p.HighScore, p.GamesPlayed, p.CreatedAt.Local().Format("2006-01-02"))
	}
	return nil
}

// writeEmails prints the player IDs newline-joined, for export.
func writeEmails(w io.Writer, store *storage.Store) error {
	players, err := store.Players()
	if err != nil {
		return fmt.Errorf("error retrieving players: %w", err)
	}
	if len(players) == 0 {
		return nil
	}

	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	_, err = fmt.Fprintln(w, strings.Join(ids, "\n"))
	return err
}
