package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"romshelf/internal/hasher"
	"romshelf/internal/history"
	"romshelf/internal/preflight"
	"romshelf/internal/reconcile"
	"romshelf/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		username      string
		apiKey        string
		systemID      int
		removeInvalid bool
		renameFiles   bool
		dedupFiles    bool
	)

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Verify ROM files against the RetroAchievements catalog",
		Long: `Scan hashes every file under the directory and checks it against the
catalog. Without --systemid, each immediate subdirectory named after a known
system (nes, snes, megadrive, ...) is scanned as that system. Repairs are
opt-in: --rename-files, --remove-invalid, and --dedup-files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			registry, err := ctx.ensureRegistry()
			if err != nil {
				return err
			}

			for _, status := range preflight.CheckSystemDeps(cfg) {
				if !status.Available && !status.Optional {
					return fmt.Errorf("%s unavailable: %s", status.Name, status.Detail)
				}
			}

			opts := reconcile.Options{
				RenameFiles:   cfg.Scan.RenameFiles,
				RemoveInvalid: cfg.Scan.RemoveInvalid,
				DedupFiles:    cfg.Scan.DedupFiles,
			}
			if cmd.Flags().Changed("rename-files") {
				opts.RenameFiles = renameFiles
			}
			if cmd.Flags().Changed("remove-invalid") {
				opts.RemoveInvalid = removeInvalid
			}
			if cmd.Flags().Changed("dedup-files") {
				opts.DedupFiles = dedupFiles
			}

			sess, err := ctx.resolveSession(username, apiKey)
			if err != nil {
				return err
			}
			client, err := ctx.newCatalogClient(sess)
			if err != nil {
				return err
			}
			resolver, err := hasher.New(cfg.HasherBinary())
			if err != nil {
				return err
			}

			scanOpts := []scan.Option{
				scan.WithReporter(newConsoleReporter(cmd.OutOrStdout())),
			}
			if cfg.History.Enabled {
				store, err := history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open scan history: %w", err)
				}
				defer store.Close()
				scanOpts = append(scanOpts, scan.WithHistoryStore(store, cfg.History.KeepRuns))
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			scanner := scan.New(registry, client, resolver, logger, scanOpts...)
			summaries, err := scanner.Scan(cmd.Context(), root, systemID, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, summary := range summaries {
				if summary.Err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", summary.Root, summary.Err)
					continue
				}
				fmt.Fprintln(out, renderScanSummary(summary))
			}
			if failed == len(summaries) {
				return fmt.Errorf("all %d subtree(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "RetroAchievements username")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "RetroAchievements web API key")
	cmd.Flags().IntVarP(&systemID, "systemid", "s", 0, "Scan the whole tree as this system id")
	cmd.Flags().BoolVarP(&removeInvalid, "remove-invalid", "r", false, "Delete files the catalog does not recognize")
	cmd.Flags().BoolVarP(&renameFiles, "rename-files", "n", false, "Rename files to their catalog names")
	cmd.Flags().BoolVarP(&dedupFiles, "dedup-files", "d", false, "Delete duplicates during rename collisions")
	return cmd
}

func renderScanSummary(summary scan.Summary) string {
	duration := summary.FinishedAt.Sub(summary.StartedAt).Round(10 * time.Millisecond)
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) in %s\n", summary.System.Name, summary.Root, duration)
	b.WriteString(renderTable(
		[]string{"Matched", "Mismatched", "Unmatched", "Renamed", "Deleted", "Failed"},
		[][]string{{
			fmt.Sprint(summary.Matched),
			fmt.Sprint(summary.Mismatched),
			fmt.Sprint(summary.Unmatched),
			fmt.Sprint(summary.Renamed),
			fmt.Sprint(summary.Deleted),
			fmt.Sprint(summary.Failed),
		}},
		0, 1, 2, 3, 4, 5,
	))
	return b.String()
}
