package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/quill-lang/quill/internal/position"
)

// Reporter writes diagnostics to a terminal or log stream.
type Reporter struct {
	out   io.Writer
	files map[string]*position.SourceFile

	// Width truncates source excerpts; zero disables truncation.
	Width int
	// Excerpt enables the source line and caret under each report.
	Excerpt bool

	errColor *color.Color
	locColor *color.Color
	dimColor *color.Color
}

// NewReporter creates a reporter writing to out. Colors are emitted only when
// useColor is set.
func NewReporter(out io.Writer, useColor bool) *Reporter {
	r := &Reporter{
		out:      out,
		files:    make(map[string]*position.SourceFile),
		Excerpt:  true,
		errColor: color.New(color.FgRed, color.Bold),
		locColor: color.New(color.FgCyan, color.Bold),
		dimColor: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{r.errColor, r.locColor, r.dimColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// AddFile registers a source file so reports can quote it.
func (r *Reporter) AddFile(sf *position.SourceFile) {
	if sf != nil {
		r.files[sf.Filename] = sf
	}
}

// Report writes one diagnostic.
func (r *Reporter) Report(d *Diagnostic) {
	var b strings.Builder

	b.WriteString(r.errColor.Sprint("error"))
	b.WriteString(" @ ")
	b.WriteString(r.locColor.Sprint(d.Span.Start.String()))
	if d.Token != "" {
		if d.IsLiteral {
			fmt.Fprintf(&b, " at literal %s", d.Token)
		} else {
			fmt.Fprintf(&b, " at token %q", d.Token)
		}
	}
	fmt.Fprintf(&b, ": %s %s\n", r.errColor.Sprint(d.Code.String()), d.Message)

	if r.Excerpt {
		b.WriteString(r.excerpt(d.Span))
	}

	_, _ = io.WriteString(r.out, b.String())
}

// ReportAll writes every diagnostic in the list in order.
func (r *Reporter) ReportAll(list List) {
	for _, d := range list {
		r.Report(d)
	}
}

// Summary writes a one-line count of errors.
func (r *Reporter) Summary(list List) {
	if len(list) == 0 {
		return
	}
	noun := "errors"
	if len(list) == 1 {
		noun = "error"
	}
	fmt.Fprintf(r.out, "%s\n", r.errColor.Sprintf("%d %s", len(list), noun))
}

func (r *Reporter) excerpt(span position.Span) string {
	sf := r.files[span.Start.Filename]
	if sf == nil || span.Start.Line < 1 {
		return ""
	}
	line := strings.ReplaceAll(sf.GetLine(span.Start.Line), "\t", " ")
	col := span.Start.Column
	if col < 1 {
		col = 1
	}

	gutter := fmt.Sprintf("%5d | ", span.Start.Line)
	if r.Width > 0 {
		avail := r.Width - len(gutter)
		if avail < 10 {
			avail = 10
		}
		// Slide the window so the caret stays visible.
		if col > avail {
			shift := col - avail/2
			if shift > len(line) {
				shift = len(line)
			}
			line = line[shift:]
			col -= shift
		}
		if len(line) > avail {
			line = line[:avail]
		}
	}

	width := 1
	if span.Start.Line == span.End.Line && span.End.Column > span.Start.Column {
		width = span.End.Column - span.Start.Column
	}
	if rest := len(line) - (col - 1); width > rest && rest > 0 {
		width = rest
	}

	var b strings.Builder
	b.WriteString(r.dimColor.Sprint(gutter))
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(r.dimColor.Sprint(strings.Repeat(" ", len(gutter)-2) + "| "))
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString(r.errColor.Sprint(strings.Repeat("^", width)))
	b.WriteByte('\n')
	return b.String()
}
