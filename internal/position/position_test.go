package position

import (
	"os"
	"path/filepath"
	"testing"

	qerrors "github.com/quill-lang/quill/internal/errors"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		pos      Position
		isValid  bool
	}{
		{
			name:     "Valid position with filename",
			pos:      Position{Filename: "main.ql", Line: 10, Column: 5, Offset: 100},
			isValid:  true,
			expected: "main.ql:10:5",
		},
		{
			name:     "Valid position without filename",
			pos:      Position{Line: 1, Column: 1, Offset: 0},
			isValid:  true,
			expected: "1:1",
		},
		{
			name:    "Invalid position - zero line",
			pos:     Position{Line: 0, Column: 1},
			isValid: false,
		},
		{
			name:    "Invalid position - negative offset",
			pos:     Position{Line: 1, Column: 1, Offset: -1},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.isValid {
				t.Errorf("IsValid() = %v, expected %v", got, tt.isValid)
			}
			if tt.isValid {
				if got := tt.pos.String(); got != tt.expected {
					t.Errorf("String() = %q, expected %q", got, tt.expected)
				}
			}
		})
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 4, Offset: 3},
	}
	b := Span{
		Start: Position{Line: 1, Column: 7, Offset: 6},
		End:   Position{Line: 2, Column: 2, Offset: 10},
	}

	u := a.Union(b)
	if u.Start != a.Start || u.End != b.End {
		t.Fatalf("Union = %v, expected %v..%v", u, a.Start, b.End)
	}
	if u.Length() != 10 {
		t.Errorf("Length() = %d, expected 10", u.Length())
	}
	if got := (Span{}).Union(b); got != b {
		t.Errorf("Union with invalid span = %v, expected %v", got, b)
	}
}

func TestSourceFile(t *testing.T) {
	sf := NewSourceFile("a.ql", "let x = 1;\r\nlet y = 2;\n")

	if got := sf.GetLine(1); got != "let x = 1;" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := sf.GetLine(2); got != "let y = 2;" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := sf.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, expected empty", got)
	}

	pos := sf.PositionFromOffset(16)
	if pos.Line != 2 || pos.Column != 5 {
		t.Errorf("PositionFromOffset(16) = %v, expected 2:5", pos)
	}

	span := Span{Start: sf.PositionFromOffset(4), End: sf.PositionFromOffset(5)}
	if got := sf.GetSpanText(span); got != "x" {
		t.Errorf("GetSpanText = %q, expected %q", got, "x")
	}
}

func TestReadSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ql")
	if err := os.WriteFile(path, []byte("include \"std.ql\";\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sf, err := ReadSourceFile(path)
	if err != nil {
		t.Fatalf("ReadSourceFile: %v", err)
	}
	if sf.Filename != path || len(sf.Lines) != 2 {
		t.Errorf("unexpected source file %q with %d lines", sf.Filename, len(sf.Lines))
	}

	_, err = ReadSourceFile(filepath.Join(dir, "missing.ql"))
	var se *qerrors.StandardError
	if !qerrors.As(err, &se) || se.Category != qerrors.CategoryIO {
		t.Fatalf("expected IO StandardError, got %v", err)
	}
}
