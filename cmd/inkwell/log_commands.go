package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inkwell/internal/runlog"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect a unit's run log",
	}
	logCmd.AddCommand(newLogStatsCommand(ctx))
	logCmd.AddCommand(newLogFailedCommand(ctx))
	return logCmd
}

func newLogStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <unit-name>",
		Short: "Show error frequency for a unit's run log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := unitLedger(ctx, args[0])
			if err != nil {
				return err
			}

			entries, err := ledger.Parse()
			if err != nil {
				return err
			}
			stats, err := ledger.ErrorStatistics()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			successes := 0
			failures := 0
			for _, e := range entries {
				if e.Status == runlog.StatusSuccess {
					successes++
				} else {
					failures++
				}
			}
			fmt.Fprintf(out, "Entries: %d (%d success, %d failure)\n", len(entries), successes, failures)

			if len(stats) == 0 {
				fmt.Fprintln(out, "No errors recorded")
				return nil
			}
			rows := make([][]string, 0, len(stats))
			for _, s := range stats {
				rows = append(rows, []string{s.Message, strconv.Itoa(s.Count)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Error", "Count"},
				rows,
				1,
			))
			return nil
		},
	}
}

func newLogFailedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "failed <unit-name>",
		Short: "List segment ids whose latest outcome is a failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := unitLedger(ctx, args[0])
			if err != nil {
				return err
			}

			failed, err := ledger.FailedIDs()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(failed) == 0 {
				fmt.Fprintln(out, "No failed segments")
				return nil
			}
			for _, id := range failed {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func unitLedger(ctx *commandContext, unitName string) (*runlog.Ledger, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return runlog.NewLedger(runLogPath(cfg, unitName), logger), nil
}
