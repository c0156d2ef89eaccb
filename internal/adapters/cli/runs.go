package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/cardquest-go/internal/adapters/persistence"
	"github.com/andrescamacho/cardquest-go/internal/domain/run"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/database"
)

// NewRunsCommand creates the runs command group
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded simulation runs",
	}
	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsShowCommand())
	return cmd
}

func newRunsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close(db)

			runs, err := persistence.NewGormRunRepository(db).List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}

func newRunsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close(db)

			summary, err := persistence.NewGormRunRepository(db).FindByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load run: %w", err)
			}
			if summary == nil {
				return fmt.Errorf("run %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:        %s\n", summary.ID)
			fmt.Fprintf(out, "Scenario:   %s\n", summary.Scenario)
			fmt.Fprintf(out, "Seed:       %d\n", summary.Seed)
			fmt.Fprintf(out, "Status:     %s\n", summary.Status)
			fmt.Fprintf(out, "Ticks:      %d\n", summary.Ticks)
			fmt.Fprintf(out, "Simulated:  %s\n", formatSimulated(summary.SimulatedMs))
			fmt.Fprintf(out, "Events:     %d\n", summary.EventCount)
			fmt.Fprintf(out, "Started:    %s\n", formatTime(summary.StartedAt))
			fmt.Fprintf(out, "Ended:      %s\n", formatTime(summary.EndedAt))
			if summary.ExitReason != "" {
				fmt.Fprintf(out, "Error:      %s\n", summary.ExitReason)
			}
			return nil
		},
	}
}

func printRuns(out io.Writer, runs []*run.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSTATUS\tTICKS\tSIMULATED\tEVENTS\tSTARTED")
	for _, s := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
			s.ID, s.Scenario, s.Status, s.Ticks, formatSimulated(s.SimulatedMs), s.EventCount, formatTime(s.StartedAt))
	}
	w.Flush()
}

// openStore connects to the configured database and makes sure the schema exists
func openStore() (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStoreWith(cfg)
}

func openStoreWith(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func formatSimulated(ms float64) string {
	return time.Duration(ms * float64(time.Millisecond)).Round(time.Millisecond).String()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
