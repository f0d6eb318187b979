package watcher

import (
	"context"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, 20*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	input <- ChangeEvent{Type: ChangeTypeRemove, Paths: []string{"a"}}
	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a"}}
	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a"}}

	select {
	case event := <-d.Output():
		if event.Type != ChangeTypeWrite {
			t.Errorf("expected the last change type to win, got %v", event.Type)
		}
		if len(event.Paths) != 3 {
			t.Errorf("expected 3 accumulated paths, got %v", event.Paths)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced event")
	}

	select {
	case event := <-d.Output():
		t.Errorf("expected a single event, got another: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerMaxWait(t *testing.T) {
	input := make(chan ChangeEvent)
	d := NewDebouncer(input, 50*time.Millisecond, 120*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Keep the input busy for longer than maxWait
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a"}}
			time.Sleep(30 * time.Millisecond)
		}
	}()

	select {
	case <-d.Output():
	case <-done:
		t.Fatal("expected a flush before the burst ended")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced event")
	}
	<-done
}

func TestDebouncerClosesOutput(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Hour, time.Hour)
	d.Start(context.Background())

	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a"}}
	close(input)

	event, ok := <-d.Output()
	if !ok || event.Type != ChangeTypeWrite {
		t.Fatalf("expected pending event to be flushed on close, got %+v, %v", event, ok)
	}
	if _, ok := <-d.Output(); ok {
		t.Error("expected output to be closed")
	}
}
