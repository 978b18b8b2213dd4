package driver

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/cli"
	"github.com/quill-lang/quill/internal/config"
	"github.com/quill-lang/quill/internal/diagnostic"
	qerrors "github.com/quill-lang/quill/internal/errors"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func quietLogger() *cli.Logger { return cli.NewLoggerTo(io.Discard, true, true, false) }

func TestParseFollowsIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.ql":      "include \"util.ql\";\ninclude \"std.ql\";\nfunction main() { 0 }\n",
		"util.ql":      "include \"std.ql\";\nlet one = 1;\n",
		"lib/std.ql":   "struct Unit {}\n",
		"unrelated.ql": "let never = 0;\n",
	})

	d := New(Options{
		Jobs:           2,
		FollowIncludes: true,
		IncludeDirs:    []string{filepath.Join(dir, "lib")},
		Logger:         quietLogger(),
	})
	res, err := d.Parse(context.Background(), filepath.Join(dir, "main.ql"))
	require.NoError(t, err)
	require.False(t, res.Failed())

	var paths []string
	for _, f := range res.Files {
		paths = append(paths, f.Path)
	}
	require.Equal(t, []string{
		filepath.Join(dir, "lib", "std.ql"),
		filepath.Join(dir, "main.ql"),
		filepath.Join(dir, "util.ql"),
	}, paths)

	main := res.Lookup(filepath.Join(dir, "main.ql"))
	require.NotNil(t, main)
	require.Len(t, main.Program.Declarations, 3)
	require.Equal(t, []string{filepath.Join(dir, "util.ql"), filepath.Join(dir, "lib", "std.ql")}, main.Includes)
}

func TestParseWithoutIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.ql": "include \"missing.ql\";\n",
		"b.ql": "let b = 2;\n",
	})

	d := New(Options{Logger: quietLogger()})
	res, err := d.Parse(context.Background(), filepath.Join(dir, "a.ql"), filepath.Join(dir, "b.ql"), filepath.Join(dir, "a.ql"))
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	require.False(t, res.Failed())
}

func TestParseReportsFatalErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.ql": "include \"nowhere.ql\";\nlet x = 1;\n",
	})

	d := New(Options{FollowIncludes: true, Logger: quietLogger()})
	res, err := d.Parse(context.Background(), filepath.Join(dir, "main.ql"), filepath.Join(dir, "absent.ql"))
	require.NoError(t, err)
	require.True(t, res.Failed())

	errs := res.Errors()
	require.Len(t, errs, 2)

	codes := map[string]bool{}
	for _, e := range errs {
		var se *qerrors.StandardError
		require.True(t, qerrors.As(e, &se))
		codes[se.Code] = true
	}
	require.True(t, codes["READ_FAILED"])
	require.True(t, codes["INCLUDE_NOT_FOUND"])
}

func TestParseCollectsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.ql": "let a = ;\nlet b = ;\n",
		"b.ql": "function f( {}\n",
	})

	d := New(Options{Jobs: 1, MaxErrors: 1, Logger: quietLogger()})
	res, err := d.Parse(context.Background(), filepath.Join(dir, "b.ql"), filepath.Join(dir, "a.ql"))
	require.NoError(t, err)
	require.True(t, res.Failed())

	diags := res.Diagnostics()
	require.Len(t, diags, 2)
	require.Equal(t, filepath.Join(dir, "a.ql"), diags[0].Span.Start.Filename)
	require.Equal(t, diagnostic.ErrExpectedExpression, diags[0].Code)
	require.Equal(t, diagnostic.ErrExpectedIdentifier, diags[1].Code)
}

func TestParseCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.ql": "let a = 1;\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{Logger: quietLogger()}).Parse(ctx, filepath.Join(dir, "a.ql"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFromConfigLogs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"quill.toml": "[driver]\ninclude_paths = [\"lib\"]\njobs = 3\n",
		"lib/x.ql":   "let x = 1;\n",
		"main.ql":    "include \"x.ql\";\n",
	})
	cfg, err := config.Load(filepath.Join(dir, "quill.toml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := FromConfig(cfg, cli.NewLoggerTo(&buf, true, false, false))
	require.Equal(t, 3, opts.Jobs)
	require.True(t, opts.FollowIncludes)

	res, err := New(opts).Parse(context.Background(), filepath.Join(dir, "main.ql"))
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	require.Contains(t, buf.String(), "[INFO]")
	require.Contains(t, buf.String(), "parsed "+filepath.Join(dir, "main.ql"))
}

func TestParseExamples(t *testing.T) {
	main, err := filepath.Abs(filepath.Join("..", "..", "examples", "hello.ql"))
	require.NoError(t, err)

	d := New(Options{Jobs: 4, FollowIncludes: true, Logger: quietLogger()})
	res, err := d.Parse(context.Background(), main)
	require.NoError(t, err)
	require.False(t, res.Failed(), "%v", res.Diagnostics())
	require.Len(t, res.Files, 2)
	require.NotNil(t, res.Lookup(filepath.Join(filepath.Dir(main), "lib", "io.ql")))
}
