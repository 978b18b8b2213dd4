package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherTranslatesEvents(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		t.Fatalf("Add: %v", err)
	}

	path := filepath.Join(dir, "a.ql")
	if err := os.WriteFile(path, []byte("let a = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-fw.Events():
			if ev.Path == path && ev.Op&(OpCreate|OpWrite) != 0 {
				return
			}
		case err := <-fw.Errors():
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatal("no event for created file")
		}
	}
}

func TestRunReportsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "main.ql")
	other := filepath.Join(dir, "other.ql")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, []byte("let x = 1;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, []string{watched}, 20*time.Millisecond, func(files []string) {
			changes <- files
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(other, []byte("let y = 2;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte("let x = 2;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case files := <-changes:
		if len(files) != 1 || files[0] != watched {
			t.Fatalf("changed files = %v, expected [%s]", files, watched)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, expected context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestCloseStopsLoopWithFullBuffer(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := fw.Add(dir); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// More events than the buffer holds, none of them read.
	for i := 0; i < 2*cap(fw.evC); i++ {
		name := filepath.Join(dir, fmt.Sprintf("f%03d.ql", i))
		if err := os.WriteFile(name, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(200 * time.Millisecond)

	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-fw.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("event loop still running after Close")
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
