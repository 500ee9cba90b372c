package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"captionburn/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the external binaries captionburn needs are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				detail := status.Description
				if status.Detail != "" {
					detail = status.Detail
				}
				if !status.Available && !status.Optional {
					missing++
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Found", "Detail"}, rows, nil))
			if missing > 0 {
				return fmt.Errorf("%d required dependencies missing", missing)
			}
			return nil
		},
	}
}
