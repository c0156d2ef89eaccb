package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardquest-go/internal/adapters/persistence"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/run"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/database"
)

// NewEventsCommand creates the events command group
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the event journal",
	}
	cmd.AddCommand(newEventsTailCommand())
	return cmd
}

func newEventsTailCommand() *cobra.Command {
	var (
		limit     int
		eventType string
		since     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tail <run-id>",
		Short: "Show the latest journaled events of a run",
		Long: `Show the latest journaled events of a run, newest first.

Examples:
  cardquest events tail <run-id>
  cardquest events tail <run-id> --type combat_victory --limit 10
  cardquest events tail <run-id> --since 5m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openStoreWith(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			var typeFilter *events.Type
			if eventType != "" {
				t := events.Type(eventType)
				typeFilter = &t
			}
			var sinceFilter *time.Time
			if since > 0 {
				t := time.Now().Add(-since)
				sinceFilter = &t
			}

			journal := persistence.NewGormEventJournal(db, nil, cfg.Simulation.JournalDedupWindow)
			entries, err := journal.Tail(cmd.Context(), args[0], limit, typeFilter, sinceFilter)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No events for run %s\n", args[0])
				return nil
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events to show")
	cmd.Flags().StringVar(&eventType, "type", "", "Only show events of this type")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show events newer than this")
	return cmd
}

func printEntries(out io.Writer, entries []run.JournalEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tCARD\tHERO\tITEM\tAMOUNT\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("15:04:05.000"),
			e.Type,
			orDash(e.CardID),
			orDash(e.HeroID),
			orDash(e.ItemID),
			amount(e.Amount),
			e.Message,
		)
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func amount(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
