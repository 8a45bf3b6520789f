package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapgate/internal/core"
	"github.com/vovakirdan/flapgate/internal/platform/tui"
	"github.com/vovakirdan/flapgate/internal/reward"
	"github.com/vovakirdan/flapgate/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game with the main menu.

Controls:
  Space/Up/W/Enter - Flap (the first flap starts the run)
  Mouse click      - Flap
  R/Enter          - Play again (after game over)
  B/Esc            - Back to menu
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - Default tuning
  hard   - Faster start, steeper speed-up
  fixed  - Speed and spacing never change

Examples:
  flapgate play
  flapgate play --difficulty easy
  flapgate play --player alice@example.com
  flapgate play --config ./my-flapgate.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	// Get terminal size early so the first frame fits
	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	logger, closeLog := newFileLogger()
	defer closeLog()

	deps := tui.Deps{
		Config:   cfg,
		Runtime:  rt,
		PlayerID: resolvePlayer(flagPlayer),
		Logger:   logger,
	}

	// Open player storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open player database: %v\n", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		deps.Store = store
		deps.Issuer = reward.NewIssuer(cfg.Rewards, store, reward.WithLogger(logger))
	}

	if err := tui.Run(deps); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// resolvePlayer picks the local player ID: the flag, then the OS user.
func resolvePlayer(flag string) string {
	if id := storage.NormalizeID(flag); id != "" {
		return id
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return storage.NormalizeID(u.Username)
	}
	return storage.NormalizeID(os.Getenv("USER"))
}

// newFileLogger logs to ~/.flapgate/flapgate.log, since the alt screen owns
// the terminal while playing. It falls back to discarding output.
func newFileLogger() (*log.Logger, func()) {
	discard := func() (*log.Logger, func()) {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return discard()
	}
	dir := filepath.Join(home, ".flapgate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard()
	}
	f, err := os.OpenFile(filepath.Join(dir, "flapgate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard()
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flapgate",
	})
	return logger, func() { f.Close() }
}
