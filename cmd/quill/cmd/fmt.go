package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	qerrors "github.com/quill-lang/quill/internal/errors"
	"github.com/quill-lang/quill/internal/format"
)

var (
	fmtWrite bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Print files in canonical form",
	Long:  "Print each file in canonical form. Files with syntax errors are left untouched.",
	Args:  usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := false
		for _, path := range args {
			src, prog, err := parseSource(path)
			if err == errFailed {
				failed = true
				continue
			}
			if err != nil {
				return err
			}

			formatted := format.Source(src.Content, prog, format.DefaultOptions())
			switch {
			case fmtDiff:
				res, err := format.Diff(path, src.Content, formatted, 3)
				if err != nil {
					return err
				}
				if res.HasChanges {
					fmt.Fprint(out, res.Text)
					logger.Info("%s: +%d -%d lines", path, res.Stats.LinesAdded, res.Stats.LinesRemoved)
				}
			case fmtWrite:
				if formatted == src.Content {
					logger.Debug("%s already formatted", path)
					continue
				}
				if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
					return qerrors.WriteFailure(path, err)
				}
				logger.Info("formatted %s", path)
			default:
				fmt.Fprint(out, formatted)
			}
		}
		if failed {
			return errFailed
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a unified diff instead of the formatted text")
	rootCmd.AddCommand(fmtCmd)
}
