package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardquest-go/internal/adapters/catalog"
)

// NewContentCommand creates the content command group
func NewContentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect content definitions",
	}
	cmd.AddCommand(newContentValidateCommand())
	return cmd
}

func newContentValidateCommand() *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Load and cross-check a content file or directory",
		Long: `Load content definitions and check every reference between them. With no
path the configured simulation.content_path is used.

Examples:
  cardquest content validate
  cardquest content validate configs/content.yaml --scenario configs/scenarios/starter.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Simulation.ContentPath
			}

			registry, err := catalog.LoadCatalog(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Content %s is valid\n", path)
			counts := registry.Counts()
			kinds := make([]string, 0, len(counts))
			for kind := range counts {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				fmt.Fprintf(out, "  %-10s %d\n", kind+":", counts[kind])
			}

			if scenarioPath != "" {
				sc, err := catalog.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Scenario %s: %d heroes, %d cards\n", sc.Name, len(sc.Heroes), len(sc.Cards))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Also validate a scenario file")
	return cmd
}
