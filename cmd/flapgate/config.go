package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration that play and serve would use, after the
search path, --config and --difficulty have been applied.

The output is valid YAML and can be saved as a starting point:
  flapgate config > ~/.flapgate/configs/flapgate.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, string(data))
	return err
}
