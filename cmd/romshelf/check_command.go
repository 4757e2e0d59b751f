package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"romshelf/internal/catalog"
	"romshelf/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		username string
		apiKey   string
		offline  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the machine is ready to scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var verifier catalog.CredentialVerifier
			if !offline {
				sess, err := ctx.resolveSession(username, apiKey)
				if err != nil {
					return err
				}
				client, err := ctx.newCatalogClient(sess)
				if err != nil {
					return err
				}
				verifier = client
			}

			results := preflight.RunAll(cmd.Context(), cfg, verifier)
			out := cmd.OutOrStdout()
			colorize := writerIsTerminal(out)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if !preflight.Passed(results) {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "RetroAchievements username")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "RetroAchievements web API key")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the catalog credential probe")
	return cmd
}
