package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/driver"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/position"
)

var noIncludes bool

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Report syntax errors",
	Long:  "Parse each file, and every file it includes, and report all syntax errors.",
	Args:  usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&noIncludes, "no-includes", false, "do not follow include declarations")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, files []string) error {
	opts := driver.FromConfig(cfg, logger)
	if noIncludes {
		opts.FollowIncludes = false
	}

	res, err := driver.New(opts).Parse(cmd.Context(), files...)
	if err != nil {
		return err
	}
	if !report(res) {
		return errFailed
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d file(s)\n", len(res.Files))
	return nil
}

// report prints the diagnostics and fatal errors of a driver run and
// reports whether it was clean.
func report(res *driver.Result) bool {
	for _, f := range res.Files {
		reporter.AddFile(f.Source)
	}
	for _, err := range res.Errors() {
		logger.Error("%v", err)
	}
	diags := res.Diagnostics()
	reporter.ReportAll(diags)
	reporter.Summary(diags)
	return !res.Failed()
}

// parseSource reads and parses a single file without following includes.
// Diagnostics are reported; a nil program means the file could not be used.
func parseSource(path string) (*position.SourceFile, *ast.Program, error) {
	src, err := position.ReadSourceFile(path)
	if err != nil {
		return nil, nil, err
	}
	reporter.AddFile(src)

	prog, diags := parser.ParseFile(path, src.Content, parser.WithMaxErrors(cfg.Diagnostics.MaxErrors))
	if len(diags) > 0 {
		reporter.ReportAll(diags)
		reporter.Summary(diags)
		return src, nil, errFailed
	}
	logger.Info("parsed %s: %d declaration(s)", path, len(prog.Declarations))
	return src, prog, nil
}
