package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/cli"
	"github.com/quill-lang/quill/internal/config"
	"github.com/quill-lang/quill/internal/diagnostic"
)

var (
	cfgFile   string
	verbose   bool
	debug     bool
	colorMode string
	maxErrors int

	cfg      *config.Config
	logger   *cli.Logger
	reporter *diagnostic.Reporter
)

// errFailed signals that a command already reported its errors.
var errFailed = errors.New("failed")

// usageError marks errors in flags or arguments.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill language front end",
	Long: `quill lexes and parses Quill source files.

Commands:
  check    report syntax errors in files and their includes
  tokens   print the token stream of a file
  ast      print the syntax tree of a file
  fmt      print or rewrite a file in canonical form
  repl     parse expressions and declarations interactively
  watch    re-check files whenever they change`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitOK
	}
	if errors.Is(err, errFailed) {
		return cli.ExitError
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return cli.ExitUsage
	}
	return cli.ExitError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: nearest quill.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color output: auto, always or never")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", -1, "stop recording after N errors per file (0 = unlimited)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
}

// setup loads configuration, applies flag overrides and builds the logger
// and reporter shared by all commands.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Find(".")
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("color") {
		cfg.Diagnostics.Color = colorMode
	}
	if maxErrors >= 0 {
		cfg.Diagnostics.MaxErrors = maxErrors
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{err}
	}

	useColor, err := cli.UseColor(cfg.Diagnostics.Color, os.Stderr)
	if err != nil {
		return &usageError{err}
	}
	logger = cli.NewLoggerTo(os.Stderr, verbose, debug, useColor)
	reporter = diagnostic.NewReporter(os.Stderr, useColor)
	reporter.Width = cli.TerminalWidth(os.Stderr, 0)

	if cfgFile != "" {
		logger.Debug("loaded config %s", cfgFile)
	}
	return nil
}

// usageArgs wraps an argument validator so that its failures exit with the
// usage status.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}
