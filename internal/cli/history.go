package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"focusclock/internal/history"
	"focusclock/internal/ui/timerview"
)

func newHistoryCmd(env *environment) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize today's sessions and list the most recent ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			journal, err := env.openJournal()
			if err != nil {
				return err
			}
			writeHistory(cmd.OutOrStdout(), journal.Summary(time.Now()), journal.Recent(limit))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of recent sessions to list")
	return cmd
}

func writeHistory(out io.Writer, summary history.Summary, recent []history.Record) {
	fmt.Fprintf(out, "Today: %d sessions, %d pomodoros, %d breaks\n", summary.Count, summary.Pomodoros, summary.Breaks)
	fmt.Fprintf(out, "Focus time: %s, total: %s, average: %s\n",
		formatDuration(summary.Focus), formatDuration(summary.Total), formatDuration(summary.Average))
	if len(recent) == 0 {
		return
	}

	fmt.Fprintln(out)
	for _, record := range recent {
		status := "done"
		if record.Skipped {
			status = "skipped"
		}
		line := fmt.Sprintf("%s  %-11s  %s / %s  %s",
			record.At.Local().Format("2006-01-02 15:04"),
			record.Mode.Label(),
			timerview.FormatClock(int(record.Elapsed().Seconds())),
			timerview.FormatClock(int(record.Planned().Seconds())),
			status)
		if record.Note != "" {
			line += "  " + record.Note
		}
		fmt.Fprintln(out, line)
	}
}

func formatDuration(value time.Duration) string {
	return value.Round(time.Second).String()
}
