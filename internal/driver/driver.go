// Package driver parses a set of Quill source files and, optionally, every
// file they include. Files are parsed concurrently and each file is parsed
// at most once per run.
package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/cli"
	"github.com/quill-lang/quill/internal/config"
	"github.com/quill-lang/quill/internal/diagnostic"
	qerrors "github.com/quill-lang/quill/internal/errors"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/position"
)

// Options configures a Driver.
type Options struct {
	// Jobs bounds the number of files parsed at once; zero means one per
	// file in the current wave.
	Jobs           int
	FollowIncludes bool
	IncludeDirs    []string
	MaxErrors      int
	Logger         *cli.Logger
}

// FromConfig derives driver options from a project configuration.
func FromConfig(cfg *config.Config, logger *cli.Logger) Options {
	return Options{
		Jobs:           cfg.Driver.Jobs,
		FollowIncludes: cfg.Driver.FollowIncludes,
		IncludeDirs:    cfg.IncludeDirs(),
		MaxErrors:      cfg.Diagnostics.MaxErrors,
		Logger:         logger,
	}
}

// File is the outcome of parsing one source file.
type File struct {
	Path        string
	Source      *position.SourceFile
	Program     *ast.Program
	Diagnostics diagnostic.List
	// Err is a fatal error for this file: it could not be read, or one of
	// its includes could not be found.
	Err error
	// Includes are the resolved paths of the files this one includes.
	Includes []string
}

// Result collects every file parsed in a run, sorted by path.
type Result struct {
	Files []*File
}

// Diagnostics returns the diagnostics of all files sorted by position.
func (r *Result) Diagnostics() diagnostic.List {
	var all diagnostic.List
	for _, f := range r.Files {
		all = append(all, f.Diagnostics...)
	}
	all.Sort()
	return all
}

// Errors returns the fatal errors of all files.
func (r *Result) Errors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Failed reports whether any file had a diagnostic or a fatal error.
func (r *Result) Failed() bool {
	for _, f := range r.Files {
		if f.Err != nil || len(f.Diagnostics) > 0 {
			return true
		}
	}
	return false
}

// Lookup returns the file parsed from path.
func (r *Result) Lookup(path string) *File {
	key := canonical(path)
	for _, f := range r.Files {
		if canonical(f.Path) == key {
			return f
		}
	}
	return nil
}

// Driver runs parses.
type Driver struct {
	opts Options
}

// New creates a driver.
func New(opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = cli.NewLogger(false, false)
	}
	return &Driver{opts: opts}
}

// Parse parses paths and, when FollowIncludes is set, everything reachable
// through include declarations. Syntax errors and per-file fatal errors are
// recorded in the result; the returned error is only set when ctx is
// cancelled.
func (d *Driver) Parse(ctx context.Context, paths ...string) (*Result, error) {
	var (
		mu    sync.Mutex
		seen  = make(map[string]bool)
		files []*File
	)

	var wave []string
	for _, p := range paths {
		if key := canonical(p); !seen[key] {
			seen[key] = true
			wave = append(wave, p)
		}
	}

	for depth := 0; len(wave) > 0; depth++ {
		d.opts.Logger.Debug("parse wave %d: %d file(s)", depth, len(wave))

		g, gctx := errgroup.WithContext(ctx)
		if d.opts.Jobs > 0 {
			g.SetLimit(d.opts.Jobs)
		}

		var next []string
		for _, path := range wave {
			path := path
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				f := d.parseFile(path)

				mu.Lock()
				defer mu.Unlock()
				files = append(files, f)
				if !d.opts.FollowIncludes {
					return nil
				}
				for _, inc := range f.Includes {
					if key := canonical(inc); !seen[key] {
						seen[key] = true
						next = append(next, inc)
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		sort.Strings(next)
		wave = next
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return &Result{Files: files}, nil
}

func (d *Driver) parseFile(path string) *File {
	f := &File{Path: path}

	src, err := position.ReadSourceFile(path)
	if err != nil {
		d.opts.Logger.Error("%v", err)
		f.Err = err
		return f
	}
	f.Source = src

	f.Program, f.Diagnostics = parser.ParseFile(path, src.Content, parser.WithMaxErrors(d.opts.MaxErrors))
	d.opts.Logger.Info("parsed %s: %d declaration(s), %d error(s)", path, len(f.Program.Declarations), len(f.Diagnostics))

	if !d.opts.FollowIncludes {
		return f
	}
	for _, inc := range f.Program.Includes() {
		resolved, err := d.resolve(inc, path)
		if err != nil {
			d.opts.Logger.Warn("%v", err)
			if f.Err == nil {
				f.Err = err
			}
			continue
		}
		d.opts.Logger.Debug("%s includes %s", path, resolved)
		f.Includes = append(f.Includes, resolved)
	}
	return f
}

// resolve finds an included file relative to the including file first, then
// in each include directory.
func (d *Driver) resolve(include, from string) (string, error) {
	if filepath.IsAbs(include) {
		if exists(include) {
			return filepath.Clean(include), nil
		}
		return "", qerrors.IncludeNotFound(include, from)
	}

	candidates := []string{filepath.Join(filepath.Dir(from), include)}
	for _, dir := range d.opts.IncludeDirs {
		candidates = append(candidates, filepath.Join(dir, include))
	}
	for _, c := range candidates {
		if exists(c) {
			return c, nil
		}
	}
	return "", qerrors.IncludeNotFound(include, from)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
