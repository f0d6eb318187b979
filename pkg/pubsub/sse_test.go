package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func publishStatuses(t *testing.T, pub *SSEPublisher, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		if err := pub.Publish(TopicBoard, "addNode", BoardStatus{Revision: i, Nodes: i}); err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}
}

func TestEventBufferReplayAll(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic(TopicBoard, TopicConfig{BufferSize: 3, ReplayAll: true})
	publishStatuses(t, pub, 5)

	sub, err := pub.Subscribe(context.Background(), TopicBoard)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	// Should receive the last 3 events (3, 4, 5)
	for want := 3; want <= 5; want++ {
		select {
		case event := <-sub.Events():
			if event.Version != want {
				t.Errorf("Expected version %d, got %d", want, event.Version)
			}
			var status BoardStatus
			if err := json.Unmarshal(event.Data, &status); err != nil {
				t.Fatalf("Failed to decode payload: %v", err)
			}
			if status.Revision != want {
				t.Errorf("Expected revision %d, got %d", want, status.Revision)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for event %d", want)
		}
	}
}

func TestReplayLastOnly(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic(TopicBoard, TopicConfig{BufferSize: 5})
	publishStatuses(t, pub, 3)

	sub, err := pub.Subscribe(context.Background(), TopicBoard)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		if event.Version != 3 || event.Type != "addNode" {
			t.Errorf("Expected last addNode event (version 3), got %+v", event)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}

	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected extra event version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNoBufferDeliversOnlyNewEvents(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	publishStatuses(t, pub, 3)

	sub, err := pub.Subscribe(context.Background(), TopicBoard)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected replayed event version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}

	if err := pub.Publish(TopicBoard, "undo", BoardStatus{Revision: 4}); err != nil {
		t.Fatalf("Failed to publish new event: %v", err)
	}

	select {
	case event := <-sub.Events():
		if event.Version != 4 {
			t.Errorf("Expected version 4, got %d", event.Version)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for new event")
	}
}

func TestContextCancelClosesSubscription(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := pub.Subscribe(ctx, TopicView)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("Expected closed channel, got an event")
		}
	case <-time.After(time.Second):
		t.Fatal("Subscription was not closed after context cancellation")
	}

	// Closing twice is safe
	if err := sub.Close(); err != nil {
		t.Errorf("Second Close returned %v", err)
	}
}

func TestPublishAfterClose(t *testing.T) {
	pub := NewSSEPublisher()
	pub.Close()

	if err := pub.Publish(TopicBoard, "addNode", BoardStatus{}); err == nil {
		t.Error("Expected error publishing on closed publisher")
	}
	if _, err := pub.Subscribe(context.Background(), TopicBoard); err == nil {
		t.Error("Expected error subscribing to closed publisher")
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	event := Event{Topic: TopicBoard, Type: "redo", Data: json.RawMessage(`{"revision":7}`), Version: 7}

	if err := WriteSSE(&buf, event); err != nil {
		t.Fatalf("WriteSSE() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "event: board\nid: 7\ndata: ") || !strings.HasSuffix(out, "\n\n") {
		t.Errorf("Unexpected SSE framing: %q", out)
	}
	if !strings.Contains(out, `"revision":7`) {
		t.Errorf("Expected payload in output: %q", out)
	}
}
