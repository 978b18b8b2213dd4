package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/ast"
)

var astFormat string

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a file",
	Long: `Print the syntax tree of a file.

Formats:
  sexpr   prefix form, e.g. (ADD 1 (MUL 2 3))
  source  re-parsable source text, one declaration per line
  yaml    node kinds, positions and children`,
	Args: usageArgs(cobra.ExactArgs(1)),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		switch astFormat {
		case "sexpr", "source", "yaml":
			return nil
		}
		return &usageError{fmt.Errorf("unknown format %q", astFormat)}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, prog, err := parseSource(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch astFormat {
		case "source":
			for _, d := range prog.Declarations {
				fmt.Fprintln(out, d.String())
			}
		case "yaml":
			data, err := ast.DumpYAML(prog)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		default:
			fmt.Fprintln(out, ast.SExpr(prog))
		}
		return nil
	},
}

func init() {
	astCmd.Flags().StringVarP(&astFormat, "format", "f", "sexpr", "output format: sexpr, source or yaml")
	rootCmd.AddCommand(astCmd)
}
