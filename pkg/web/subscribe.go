package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ritzau/taskboard/pkg/lens"
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/pubsub"
)

// startSSE writes the event-stream headers and an initial comment
func startSSE(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*") // CORS support

	// Send initial comment to establish connection (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	flush(w)
}

func flush(w http.ResponseWriter) {
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// stream forwards subscription events until the client goes away or the publisher closes
func stream(w http.ResponseWriter, r *http.Request, sub pubsub.Subscription) {
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.DebugContext(r.Context(), "client disconnected", "topic", sub.Topic(), "error", err)
			return
		}
		flush(w)
	}
}

func (s *Server) handleSubscribeBoard(w http.ResponseWriter, r *http.Request) {
	sub, err := s.publisher.Subscribe(r.Context(), pubsub.TopicBoard)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	startSSE(w)
	stream(w, r, sub)
}

// handleSubscribeView sends the full current view, then streams diffs against it
func (s *Server) handleSubscribeView(w http.ResponseWriter, r *http.Request) {
	sub, err := s.publisher.Subscribe(r.Context(), pubsub.TopicView)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	startSSE(w)

	// Subscribed before reading the view, so no change is missed. A diff computed
	// against an older view can still follow; its upserts carry the newer state.
	view := s.store.View()
	data, err := json.Marshal(&lens.ViewDiff{
		AddedNodes: view.Nodes,
		AddedEdges: view.Edges,
		Cycles:     view.Cycles,
		FullView:   true,
	})
	if err != nil {
		sub.Close()
		logging.ErrorContext(r.Context(), "failed to encode view", "error", err)
		return
	}
	if err := pubsub.WriteSSE(w, pubsub.Event{Topic: pubsub.TopicView, Type: "view", Data: data}); err != nil {
		sub.Close()
		return
	}
	flush(w)

	stream(w, r, sub)
}
