// Package web exposes the board store over a JSON API with server-sent change events.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ritzau/taskboard/pkg/lens"
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/pubsub"
	"github.com/ritzau/taskboard/pkg/store"
)

// shutdownTimeout bounds how long Start waits for in-flight requests on shutdown
const shutdownTimeout = 5 * time.Second

// Server represents the web server
type Server struct {
	router    *mux.Router
	store     *store.Store
	publisher *pubsub.SSEPublisher
}

// NewServer creates a web server for a store. The store should publish its changes to
// publisher so subscribers see them.
func NewServer(st *store.Store, publisher *pubsub.SSEPublisher) *Server {
	// board: buffer last 10 events, replay only the last one as current status
	publisher.ConfigureTopic(pubsub.TopicBoard, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	// view: diffs are only meaningful in sequence; new subscribers get a full view instead
	publisher.ConfigureTopic(pubsub.TopicView, pubsub.TopicConfig{
		BufferSize: 0,
	})

	s := &Server{
		router:    mux.NewRouter(),
		store:     st,
		publisher: publisher,
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler with request logging applied
func (s *Server) Handler() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

func (s *Server) setupRoutes() {
	// SSE subscription endpoints
	s.router.HandleFunc("/api/subscribe/board", s.handleSubscribeBoard).Methods("GET")
	s.router.HandleFunc("/api/subscribe/view", s.handleSubscribeView).Methods("GET")

	// Read-only selectors
	s.router.HandleFunc("/api/state", s.handleState).Methods("GET")
	s.router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/api/view", s.handleView).Methods("GET")
	s.router.HandleFunc("/api/presets", s.handlePresets).Methods("GET")

	// Nodes and groups
	s.router.HandleFunc("/api/nodes", s.handleAddNode).Methods("POST")
	s.router.HandleFunc("/api/nodes/{id}", s.handleUpdateNode).Methods("PATCH")
	s.router.HandleFunc("/api/nodes/{id}", s.handleDeleteNode).Methods("DELETE")
	s.router.HandleFunc("/api/nodes/{id}/group", s.handleMoveNodeToGroup).Methods("POST")
	s.router.HandleFunc("/api/groups", s.handleAddGroup).Methods("POST")
	s.router.HandleFunc("/api/groups/{id}/toggle", s.handleToggleGroup).Methods("POST")

	// Edges
	s.router.HandleFunc("/api/edges", s.handleAddEdge).Methods("POST")
	s.router.HandleFunc("/api/edges/{id}", s.handleRemoveEdge).Methods("DELETE")
	s.router.HandleFunc("/api/edges/{id}/cycle", s.handleCycleEdge).Methods("POST")
	s.router.HandleFunc("/api/edges/{id}/type", s.handleSetEdgeType).Methods("PUT")

	// View state
	s.router.HandleFunc("/api/filters", s.handleSetFilters).Methods("PUT")
	s.router.HandleFunc("/api/filters", s.handleClearFilters).Methods("DELETE")
	s.router.HandleFunc("/api/preset", s.handleSetPreset).Methods("PUT")
	s.router.HandleFunc("/api/selection", s.handleSetSelection).Methods("PUT")
	s.router.HandleFunc("/api/editing", s.handleSetEditing).Methods("PUT")

	// Bulk intake from the rendering surface
	s.router.HandleFunc("/api/changes/nodes", s.handleNodeChanges).Methods("POST")
	s.router.HandleFunc("/api/changes/edges", s.handleEdgeChanges).Methods("POST")

	// History
	s.router.HandleFunc("/api/undo", s.handleUndo).Methods("POST")
	s.router.HandleFunc("/api/redo", s.handleRedo).Methods("POST")
}

// RunViewDiffs publishes a view diff on the view topic after every board change
// until ctx is done
func (s *Server) RunViewDiffs(ctx context.Context) error {
	sub, err := s.publisher.Subscribe(ctx, pubsub.TopicBoard)
	if err != nil {
		return fmt.Errorf("failed to subscribe to board changes: %w", err)
	}
	defer sub.Close()

	snapshot := lens.CreateSnapshot(s.store.View())

	for event := range sub.Events() {
		var diff *lens.ViewDiff
		snapshot, diff = lens.NextSnapshot(snapshot, s.store.View())

		if diff == nil || diff.Empty() {
			logging.Trace("view unchanged", "op", event.Type)
			continue
		}
		if err := s.publisher.Publish(pubsub.TopicView, event.Type, diff); err != nil {
			logging.Warn("failed to publish view diff", "error", err)
		}
	}

	return nil
}

// Start serves on port until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	// Close subscriptions first so streaming handlers return
	s.publisher.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}

	logging.Info("web server stopped")
	return nil
}
