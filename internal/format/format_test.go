package format

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/internal/parser"
)

func formatString(t *testing.T, src string, opts Options) string {
	t.Helper()
	prog, diags := parser.ParseFile("test.ql", src)
	if len(diags) > 0 {
		t.Fatalf("ParseFile(%q): %v", src, diags)
	}
	return Source(src, prog, opts)
}

func TestSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"spacing", "let   x=1+2;", DefaultOptions(), "let x = 1 + 2;\n"},
		{"one declaration per line", "struct P{x:int8}enum E{A}", DefaultOptions(), "struct P { x: int8 }\nenum E { A }\n"},
		{"empty", "", DefaultOptions(), ""},
		{"crlf preserved", "let a = 1;\r\nlet b = 2;\r\n", DefaultOptions(), "let a = 1;\r\nlet b = 2;\r\n"},
		{"crlf dropped", "let a = 1;\r\n", Options{}, "let a = 1;\n"},
		{"blocks", "function f() { let a = 1; a }", Options{}, "function f() {\n\tlet a = 1;\n\ta\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatString(t, tt.in, tt.opts); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	original := "let   x=1;\nlet y = 2;\n"
	formatted := formatString(t, original, DefaultOptions())

	res, err := Diff("main.ql", original, formatted, 3)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !res.HasChanges {
		t.Fatal("expected changes")
	}
	if res.Stats.LinesAdded != 1 || res.Stats.LinesRemoved != 1 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	for _, want := range []string{"--- main.ql\t(original)", "+++ main.ql\t(formatted)", "-let   x=1;", "+let x = 1;", " let y = 2;"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("diff does not contain %q:\n%s", want, res.Text)
		}
	}
}

func TestDiffUnchanged(t *testing.T) {
	res, err := Diff("main.ql", "let x = 1;\n", "let x = 1;\n", 3)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res.HasChanges || res.Text != "" {
		t.Fatalf("unexpected diff %+v", res)
	}
}
