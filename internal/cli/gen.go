package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inikulin/dmn/internal/branding"
	"github.com/inikulin/dmn/internal/config"
	"github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/prompt"
	"github.com/inikulin/dmn/internal/reconcile"
	"github.com/inikulin/dmn/internal/scanner"
)

func init() {
	genCmd.Flags().BoolP("force", "f", false, "Write without asking for confirmation")
	_ = viper.BindPFlag(config.KeyForce, genCmd.Flags().Lookup("force"))
	rootCmd.AddCommand(genCmd)
}

var genCmd = &cobra.Command{
	Use:   "gen [dir]",
	Short: "Add missing development entries to " + branding.IgnoreFile(),
	Long: `Scan a package directory (default: the current directory) for development
files and add the ones missing from its ignore file. Existing lines are kept
verbatim; new entries are appended after a blank line. A new file starts with
a "Generated by" header.

Prints one of: OK: saved, OK: already-perfect, OK: canceled.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		force := viper.GetBool(config.KeyForce)

		opts := []reconcile.Option{reconcileScannerOptions()}
		if !force {
			opts = append(opts, reconcile.WithConfirmer(confirmerFor(cmd)))
		}

		r, err := reconcile.New(afero.NewOsFs(), opts...)
		if err != nil {
			return err
		}
		res, err := r.Gen(cmd.Context(), dir, reconcile.Options{Force: force})
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), res)
		return nil
	},
}

// targetDir returns the absolute directory named by args, or the working
// directory when none is given.
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

func reconcileScannerOptions() reconcile.Option {
	return reconcile.WithScannerOptions(scanner.WithIgnoreFile(viper.GetString(config.KeyIgnoreFile)))
}

// confirmerFor returns a terminal confirmer on the command's streams. When
// stdin is a file that is not a terminal, asking fails so that scripts
// error out instead of hanging; runs that need no change never ask.
func confirmerFor(cmd *cobra.Command) reconcile.Confirmer {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !prompt.IsInteractive(f) {
		return reconcile.ConfirmFunc(func(context.Context, string) (bool, error) {
			return false, errors.NewValidationError("stdin", f.Name(), "not a terminal; rerun with --force to write without confirmation")
		})
	}
	return prompt.NewTerminal(in, cmd.OutOrStdout())
}

func printStatus(w io.Writer, res reconcile.Result) {
	c := color.New(color.FgYellow)
	switch res {
	case reconcile.Saved:
		c = color.New(color.FgGreen)
	case reconcile.AlreadyPerfect:
		c = color.New(color.FgCyan)
	}
	c.Fprintln(w, res.String())
}
