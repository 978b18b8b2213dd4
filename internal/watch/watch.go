// Package watch re-runs a callback when watched source files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bit set of file-system operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a change to a single path.
type Event struct {
	Path string
	Op   Op
}

// Watcher translates fsnotify notifications into Events.
type Watcher struct {
	w   *fsnotify.Watcher
	evC chan Event
	erC chan error

	closeOnce sync.Once
	done      chan struct{} // closed by Close
	stopped   chan struct{} // closed when loop exits
}

// NewWatcher creates a Watcher.
func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{
		w:       w,
		evC:     make(chan Event, 128),
		erC:     make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	defer close(fw.stopped)
	defer close(fw.evC)
	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			var op Op
			if ev.Has(fsnotify.Create) {
				op |= OpCreate
			}
			if ev.Has(fsnotify.Write) {
				op |= OpWrite
			}
			if ev.Has(fsnotify.Remove) {
				op |= OpRemove
			}
			if ev.Has(fsnotify.Rename) {
				op |= OpRename
			}
			if ev.Has(fsnotify.Chmod) {
				op |= OpChmod
			}
			select {
			case fw.evC <- Event{Path: ev.Name, Op: op}:
			case <-fw.done:
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

func (fw *Watcher) Events() <-chan Event     { return fw.evC }
func (fw *Watcher) Errors() <-chan error     { return fw.erC }
func (fw *Watcher) Add(name string) error    { return fw.w.Add(name) }
func (fw *Watcher) Remove(name string) error { return fw.w.Remove(name) }

// Close stops the watcher. Events is closed once the translation loop has
// exited, even if nobody is reading it.
func (fw *Watcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		err = fw.w.Close()
	})
	return err
}

// Run watches files and calls onChange with the sorted set of files that
// changed. Changes arriving within debounce of each other are batched.
// Editors that save by rename are handled by watching the parent
// directories. Run returns when ctx is done or the watcher fails.
func Run(ctx context.Context, files []string, debounce time.Duration, onChange func([]string)) error {
	fw, err := NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return err
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}
			if ev.Op&(OpCreate|OpWrite|OpRename) == 0 {
				continue
			}
			path, err := filepath.Abs(ev.Path)
			if err != nil || !wanted[path] {
				continue
			}
			if len(pending) == 0 {
				timer.Reset(debounce)
			}
			pending[path] = true

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			onChange(changed)

		case err := <-fw.Errors():
			return err
		}
	}
}
