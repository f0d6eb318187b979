// Package pubsub delivers board change notifications to subscribers such as SSE clients.
package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the board
const (
	TopicBoard = "board" // structural and view-state changes, payload BoardStatus
	TopicView  = "view"  // derived view diffs, payload lens.ViewDiff
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "board", "view")
	Type    string          `json:"type"`    // Event type: the operation that caused it (e.g., "addNode", "undo")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// BoardStatus summarises the store after a change
type BoardStatus struct {
	Revision     int    `json:"revision"` // Store revision, bumped on every change
	Nodes        int    `json:"nodes"`
	Groups       int    `json:"groups"`
	Edges        int    `json:"edges"`
	ActivePreset string `json:"activePreset"`
	CanUndo      bool   `json:"canUndo"`
	CanRedo      bool   `json:"canRedo"`
	Structural   bool   `json:"structural"` // true if the change was recorded in history
}
