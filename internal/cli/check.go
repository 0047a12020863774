package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/inikulin/dmn/internal/reconcile"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Report ignore entries gen would add, without writing",
	Long: `Scan a package directory like gen does and list the entries its ignore file
is missing. Exits with an error when the file is missing or incomplete, which
makes it usable as a CI gate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}

		r, err := reconcile.New(afero.NewOsFs(), reconcileScannerOptions())
		if err != nil {
			return err
		}
		plan, err := r.Plan(cmd.Context(), dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !plan.Changed() {
			printStatus(out, reconcile.AlreadyPerfect)
			return nil
		}

		if plan.Existing == nil {
			fmt.Fprintf(out, "%s does not exist; gen would create it with:\n", plan.Path)
		} else {
			fmt.Fprintf(out, "%s is missing:\n", plan.Path)
		}
		add := color.New(color.FgGreen)
		for _, line := range plan.Added {
			add.Fprintf(out, "  + %s\n", line)
		}
		return fmt.Errorf("%s is not up to date (%d missing)", plan.Path, len(plan.Added))
	},
}
