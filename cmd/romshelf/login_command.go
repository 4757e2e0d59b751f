package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"romshelf/internal/session"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var (
		username string
		apiKey   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store RetroAchievements credentials for later scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.resolveSession(username, apiKey)
			if err != nil {
				return err
			}

			client, err := ctx.newCatalogClient(sess)
			if err != nil {
				return err
			}
			if err := client.VerifyCredentials(cmd.Context()); err != nil {
				return fmt.Errorf("verify credentials: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (session stored in %s)\n",
				sess.Username, session.Path(cfg.Paths.SessionDir, sess.Username))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "RetroAchievements username")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "RetroAchievements web API key")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove a stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			user := strings.TrimSpace(username)
			if user == "" {
				user = cfg.Catalog.Username
			}
			if user == "" {
				return fmt.Errorf("no username given; use --username or set catalog.username in the config")
			}
			if err := session.Remove(cfg.Paths.SessionDir, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session for %s\n", user)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "RetroAchievements username")
	return cmd
}
