package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"assetpack/internal/aggregate"
	"assetpack/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent build runs from the history ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				if jsonOutput {
					return writeJSON(cmd, []history.Run{})
				}
				fmt.Fprintln(out, "History ledger disabled; set history.enabled = true to record builds")
				return nil
			}

			runs, err := recentRuns(cmd, cfg.History.Path, limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No build runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

// recentRuns reads the ledger without creating it when no build has run yet.
func recentRuns(cmd *cobra.Command, path string, limit int) ([]history.Run, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	store, err := history.Open(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Recent(cmd.Context(), limit)
}

func renderHistoryTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			pipelineLabel(aggregate.Kind(run.Pipeline)),
			string(run.Status),
			strconv.Itoa(run.Records),
			run.Duration().Round(time.Millisecond).String(),
			shortRunID(run.RunID),
			run.Message,
		})
	}
	return renderTable([]column{
		{header: "Started"},
		{header: "Pipeline"},
		{header: "Status"},
		{header: "Records", align: alignRight},
		{header: "Duration", align: alignRight},
		{header: "Run"},
		{header: "Message"},
	}, rows, nil)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
