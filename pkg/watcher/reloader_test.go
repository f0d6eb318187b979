package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ritzau/taskboard/pkg/preset"
)

type recordingSink struct {
	mu         sync.Mutex
	registries []*preset.Registry
}

func (s *recordingSink) ReplacePresets(r *preset.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registries = append(s.registries, r)
}

const presetFile = `
[[presets]]
id = "ops"
categories = [{ name = "Oncall", color = "#ff0000" }]
`

func writePresets(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write preset file: %v", err)
	}
}

func TestReloadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	writePresets(t, path, presetFile)

	events := make(chan ChangeEvent, 3)
	events <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{path}}
	events <- ChangeEvent{Type: ChangeTypeRemove, Paths: []string{path}}
	events <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{path}}
	close(events)

	sink := &recordingSink{}
	reloads := ReloadPresets(context.Background(), events, path, sink)

	if reloads != 2 {
		t.Errorf("expected 2 reloads, got %d", reloads)
	}
	if len(sink.registries) != 2 {
		t.Fatalf("expected 2 registries, got %d", len(sink.registries))
	}
	if p := sink.registries[0].First(); p.ID != "ops" {
		t.Errorf("expected ops preset, got %q", p.ID)
	}
}

func TestReloadPresetsKeepsCurrentOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	writePresets(t, path, "[[presets]\nbroken")

	events := make(chan ChangeEvent, 1)
	events <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{path}}
	close(events)

	sink := &recordingSink{}
	if reloads := ReloadPresets(context.Background(), events, path, sink); reloads != 0 {
		t.Errorf("expected no reloads, got %d", reloads)
	}
}

func TestWatcherPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	writePresets(t, path, presetFile)

	fw, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	d := NewDebouncer(fw.Events(), 20*time.Millisecond, time.Second)
	d.Start(ctx)

	sink := &recordingSink{}
	done := make(chan int)
	go func() { done <- ReloadPresets(ctx, d.Output(), path, sink) }()

	// Unrelated files in the same directory are ignored
	writePresets(t, filepath.Join(filepath.Dir(path), "other.toml"), "x = 1")
	writePresets(t, path, presetFile)

	deadline := time.After(5 * time.Second)
	for {
		sink.mu.Lock()
		n := len(sink.registries)
		sink.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
