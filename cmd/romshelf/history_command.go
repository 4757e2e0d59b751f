package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"romshelf/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past scan runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("scan history is disabled in the configuration")
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open scan history: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return renderRunDetails(cmd, store, args[0])
			}
			return renderRunList(cmd, store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func renderRunList(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scan runs recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID[:8],
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.SystemName,
			run.Root,
			strconv.Itoa(run.Matched),
			strconv.Itoa(run.Mismatched),
			strconv.Itoa(run.Unmatched),
			strconv.Itoa(run.Renamed),
			strconv.Itoa(run.Deleted),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Run", "Started", "System", "Root", "OK", "Mismatch", "Unmatched", "Renamed", "Deleted"},
		rows,
		4, 5, 6, 7, 8,
	))
	return nil
}

func renderRunDetails(cmd *cobra.Command, store *history.Store, prefix string) error {
	run, results, err := lookupRun(cmd, store, prefix)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  System:   %s\n", run.SystemName)
	fmt.Fprintf(out, "  Root:     %s\n", run.Root)
	fmt.Fprintf(out, "  Started:  %s\n", run.StartedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "  Flags:    rename=%s remove-invalid=%s dedup=%s\n",
		yesNo(run.RenameFiles), yesNo(run.RemoveInvalid), yesNo(run.DedupFiles))

	if len(results) == 0 {
		fmt.Fprintln(out, "  No files were scanned.")
		return nil
	}
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{result.Path, result.Outcome, result.Action, result.Detail})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Outcome", "Action", "Detail"},
		rows,
	))
	return nil
}

// lookupRun accepts either a full run id or a unique prefix of one.
func lookupRun(cmd *cobra.Command, store *history.Store, prefix string) (history.Run, []history.FileResult, error) {
	run, results, err := store.GetRun(cmd.Context(), prefix)
	if err == nil {
		return run, results, nil
	}

	runs, listErr := store.ListRuns(cmd.Context(), 1000)
	if listErr != nil {
		return history.Run{}, nil, err
	}
	var matched []history.Run
	for _, candidate := range runs {
		if len(prefix) > 0 && len(candidate.ID) >= len(prefix) && candidate.ID[:len(prefix)] == prefix {
			matched = append(matched, candidate)
		}
	}
	switch len(matched) {
	case 1:
		return store.GetRun(cmd.Context(), matched[0].ID)
	case 0:
		return history.Run{}, nil, err
	default:
		return history.Run{}, nil, fmt.Errorf("run prefix %q is ambiguous (%d matches)", prefix, len(matched))
	}
}
