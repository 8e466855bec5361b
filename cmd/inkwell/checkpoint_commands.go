package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inkwell/internal/checkpoint"
)

func newCheckpointsCommand(ctx *commandContext) *cobra.Command {
	checkpointsCmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "Inspect and manage resume checkpoints",
	}
	checkpointsCmd.AddCommand(newCheckpointsListCommand(ctx))
	checkpointsCmd.AddCommand(newCheckpointsDeleteCommand(ctx))
	return checkpointsCmd
}

func newCheckpointsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all saved checkpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := checkpointStore(ctx)
			if err != nil {
				return err
			}

			checkpoints := store.ListAll()
			out := cmd.OutOrStdout()
			if len(checkpoints) == 0 {
				fmt.Fprintln(out, "No checkpoints found")
				return nil
			}

			rows := make([][]string, 0, len(checkpoints))
			for _, cp := range checkpoints {
				rows = append(rows, []string{
					cp.SeriesName,
					strconv.Itoa(cp.ChapterCount),
					cp.LastTitle,
					cp.LastUpdated.Local().Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Unit", "Chapters", "Last Title", "Updated"},
				rows,
				1,
			))
			return nil
		},
	}
}

func newCheckpointsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <unit-name>",
		Short: "Delete the checkpoint for a unit so its next run starts over",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := checkpointStore(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if store.Delete(args[0]) {
				fmt.Fprintf(out, "Deleted checkpoint for %q\n", args[0])
			} else {
				fmt.Fprintf(out, "No checkpoint found for %q\n", args[0])
			}
			return nil
		},
	}
}

func checkpointStore(ctx *commandContext) (*checkpoint.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return checkpoint.NewStore(checkpointDir(cfg), logger), nil
}
