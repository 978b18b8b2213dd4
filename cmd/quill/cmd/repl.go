package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostic"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
)

const (
	promptMain  = "quill> "
	promptCont  = "  ...> "
	historyFile = ".quill_history"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse expressions and declarations interactively",
	Long: `Read expressions and declarations line by line and print their syntax
tree. Input that is incomplete continues on the next line.

Commands:
  :sexpr   print trees in prefix form (default)
  :source  print trees as source text
  :yaml    print trees as YAML
  :quit    exit`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(out io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	mode := "sexpr"
	for {
		src, ok := readByParseProbe(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit", ":q":
				return nil
			case ":sexpr", ":source", ":yaml":
				mode = trimmed[1:]
			default:
				fmt.Fprintln(out, "unknown command; type :quit to exit")
			}
			continue
		}

		nodes, diags, _ := parseInput(src)
		if len(diags) > 0 {
			reporter.ReportAll(diags)
			continue
		}
		for _, n := range nodes {
			fmt.Fprint(out, render(n, mode))
		}
	}
}

// readByParseProbe keeps reading lines while the accumulated input parses
// as incomplete.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, _, incomplete := parseInput(src); !incomplete {
			return src, true
		}
	}
}

// parseInput parses src as declarations when it starts with a declaration
// keyword and as one expression otherwise. incomplete reports that parsing
// failed only because input ended early.
func parseInput(src string) (nodes []ast.Node, diags diagnostic.List, incomplete bool) {
	if startsDeclaration(src) {
		prog, d := parser.ParseFile("<repl>", src)
		for _, decl := range prog.Declarations {
			nodes = append(nodes, decl)
		}
		diags = d
	} else {
		expr, err := parser.ParseExpr(src)
		if err != nil {
			errors.As(err, &diags)
		} else {
			nodes = append(nodes, expr)
		}
	}
	for _, d := range diags {
		if d.Code == diagnostic.ErrUnexpectedEOF {
			return nil, diags, true
		}
	}
	return nodes, diags, false
}

func startsDeclaration(src string) bool {
	switch lexer.New(src).NextToken().Type {
	case lexer.TokenLet, lexer.TokenStruct, lexer.TokenUnion, lexer.TokenEnum,
		lexer.TokenFunction, lexer.TokenInclude, lexer.TokenExtern:
		return true
	}
	return false
}

func render(n ast.Node, mode string) string {
	switch mode {
	case "source":
		return n.String() + "\n"
	case "yaml":
		data, err := ast.DumpYAML(n)
		if err != nil {
			return err.Error() + "\n"
		}
		return string(data)
	}
	return ast.SExpr(n) + "\n"
}
