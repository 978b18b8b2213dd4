package format

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffStat contains statistics about changes.
type DiffStat struct {
	LinesAdded   int
	LinesRemoved int
}

// DiffResult is a unified diff between a file and its formatted text.
type DiffResult struct {
	Text       string
	Stats      DiffStat
	HasChanges bool
}

// Diff returns the unified diff from original to formatted with context
// lines of context.
func Diff(filename, original, formatted string, context int) (*DiffResult, error) {
	if original == formatted {
		return &DiffResult{}, nil
	}

	a := difflib.SplitLines(normalize(original))
	b := difflib.SplitLines(normalize(formatted))
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: filename + "\t(original)",
		ToFile:   filename + "\t(formatted)",
		Context:  context,
	})
	if err != nil {
		return nil, err
	}

	res := &DiffResult{Text: text, HasChanges: text != ""}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			res.Stats.LinesRemoved += op.I2 - op.I1
			res.Stats.LinesAdded += op.J2 - op.J1
		case 'd':
			res.Stats.LinesRemoved += op.I2 - op.I1
		case 'i':
			res.Stats.LinesAdded += op.J2 - op.J1
		}
	}
	return res, nil
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
