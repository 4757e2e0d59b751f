package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSystemsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "systems",
		Short:       "List the systems romshelf can verify",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.ensureRegistry()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, registry.Len())
			for _, sys := range registry.All() {
				rows = append(rows, []string{
					strconv.Itoa(sys.ID),
					sys.Name,
					strings.Join(sys.Dirs, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "System", "Directories"},
				rows,
				0,
			))
			return nil
		},
	}
}
