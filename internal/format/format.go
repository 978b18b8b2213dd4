// Package format produces the canonical text of Quill files and diffs it
// against the original.
package format

import (
	"strings"

	"github.com/quill-lang/quill/internal/ast"
)

// Options controls formatting style.
type Options struct {
	// PreserveNewlineStyle: when true, CRLF in the original keeps CRLF in
	// the output; else LF.
	PreserveNewlineStyle bool
}

// DefaultOptions returns sane defaults.
func DefaultOptions() Options {
	return Options{PreserveNewlineStyle: true}
}

// Source returns the canonical text of prog, which was parsed from
// original. An empty program formats to the empty string.
func Source(original string, prog *ast.Program, opts Options) string {
	out := ast.Format(prog)
	if opts.PreserveNewlineStyle && strings.Contains(original, "\r\n") {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out
}
