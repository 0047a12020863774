package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inikulin/dmn/internal/branding"
	"github.com/inikulin/dmn/internal/config"
	"github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cfgFile  string
	logLevel string
	verbose  bool
	quiet    bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default "+config.FilePath()+")")
	pf.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	pf.Bool("no-color", false, "Disable colored output")
	_ = viper.BindPFlag(config.KeyNoColor, pf.Lookup("no-color"))
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps a package's ` + branding.IgnoreFile() + ` in step with its
development files (tests, benchmarks, coverage, CI and editor configs),
adding missing entries without touching what is already there.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}

		level, err := resolveLogLevel(logLevel, verbose, quiet, settings.LogLevel)
		if err != nil {
			return err
		}
		if settings.NoColor {
			color.NoColor = true
		}

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   level,
			Format:  settings.LogFormat,
			Output:  "stderr",
			NoColor: color.NoColor,
		})
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logging.WithLogger(ctx, &logger))
		return nil
	},
}

// resolveLogLevel applies flag precedence: --log-level, then -v, then -q,
// then the configured level.
func resolveLogLevel(flag string, verbose, quiet bool, configured string) (string, error) {
	switch {
	case flag != "":
		if !logging.ValidLevel(flag) {
			return "", errors.NewValidationError("log-level", flag, "unknown log level")
		}
		return flag, nil
	case verbose:
		return "debug", nil
	case quiet:
		return "error", nil
	default:
		return configured, nil
	}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(context.Background())
}
