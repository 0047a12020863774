package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inikulin/dmn/internal/targets"
)

func init() {
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the development files gen looks for, in output order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := targets.Default()
		if err != nil {
			return fmt.Errorf("loading target table: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATTERN\tKIND\tCATEGORY")
		for _, t := range table.Targets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Pattern, t.Kind, t.Category)
		}
		return w.Flush()
	},
}
