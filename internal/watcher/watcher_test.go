package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KaramelBytes/mdsummary/internal/ignore"
	"github.com/spf13/afero"
)

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	m, err := ignore.NewMatcher(ignore.MatcherOptions{Fs: afero.NewOsFs(), RootDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	w, err := New(dir, m, testInterval, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		w.Close()
	})
	return w
}

func Test_Watcher_ReportsDocumentChanges(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, "intro.md")
	if err := os.WriteFile(path, []byte("# Intro\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-w.Changes():
		found := false
		for _, c := range batch {
			if c.Path == path {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s in batch, got %v", path, batch)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}
}

func Test_Watcher_SkipsIgnoredFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "SUMMARY.md"), []byte("# Summary\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-w.Changes():
		t.Fatalf("expected no batch for the summary file, got %v", batch)
	case <-time.After(6 * testInterval):
	}
}

func Test_Watcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	sub := filepath.Join(dir, "guides")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// Drain the batch for the directory itself.
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for directory batch")
	}

	doc := filepath.Join(sub, "setup.md")
	if err := os.WriteFile(doc, []byte("# Setup\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case batch := <-w.Changes():
		if len(batch) == 0 || batch[len(batch)-1].Path != doc {
			t.Fatalf("expected %s in batch, got %v", doc, batch)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for nested change batch")
	}
}
