// flapgate is a flappy-style arcade game for the terminal, playable locally
// or over SSH, with a shared leaderboard and monthly rewards.
//
// Usage:
//
//	flapgate play            - Play in this terminal
//	flapgate serve           - Start SSH server for remote play
//	flapgate leaderboard     - Show the top players
//	flapgate scores          - Show the best single games
//	flapgate config          - Print the effective configuration
//	flapgate admin players   - List every player (operators only)
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gap placement
//	--db <path>           - Set database path (default: ~/.flapgate/flapgate.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--player <id>         - Player ID for local play (default: $USER)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgate/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapgate",
	Short: "flapgate - fly through the gates in your terminal",
	Long: `flapgate is a terminal flappy-style game. Flap through the gates,
climb the leaderboard and unlock a monthly reward.

Available commands:
  play         - Play in this terminal
  serve        - Start SSH server for remote play
  leaderboard  - Show the top players
  scores       - Show the best single games
  config       - Print the effective configuration
  admin        - Operator tools (player roster, email export)

Examples:
  flapgate play
  flapgate play --difficulty hard
  flapgate serve --ssh :2222
  flapgate leaderboard`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapgate/flapgate.db", "Path to player database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player ID for local play (default: $USER)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(adminCmd)
}

// loadConfig resolves the game configuration from the global flags.
func loadConfig(path, preset string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(preset)); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
