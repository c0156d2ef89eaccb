package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cardquest",
		Short: "CardQuest - incremental card game simulation",
		Long: `CardQuest runs the card game simulation headless: heroes staffed on
production, exploration, area and combat cards advance every tick.

Examples:
  cardquest run --scenario configs/scenarios/starter.yaml --duration 5m
  cardquest run --max-ticks 1000 --seed 42
  cardquest content validate configs/content.yaml
  cardquest runs list
  cardquest events tail <run-id> --type task_completed`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./, ./configs, /etc/cardquest)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewContentCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewEventsCommand())

	return rootCmd
}

// loadConfig applies the global flags on top of the loaded configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
