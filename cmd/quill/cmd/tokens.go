package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/position"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a file",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := position.ReadSourceFile(args[0])
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Kind", "ID", "Line", "Col", "Value"})
		table.SetAutoWrapText(false)

		failed := false
		for _, tok := range lexer.Tokenize(src.Content, args[0]) {
			table.Append(tokenRow(tok))
			if tok.Type == lexer.TokenError {
				failed = true
			}
		}
		table.Render()

		if failed {
			return errFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func tokenRow(tok lexer.Token) []string {
	value := tok.Value()
	switch {
	case tok.Type == lexer.TokenError:
		value = tok.Reason.String() + " " + tok.Reason.Message()
	case value == "" && tok.Type != lexer.TokenEOF:
		value = tok.Type.Symbol()
	}
	return []string{
		tok.Type.String(),
		strconv.Itoa(int(tok.Type)),
		strconv.Itoa(tok.Span.Start.Line),
		strconv.Itoa(tok.Span.Start.Column),
		value,
	}
}
