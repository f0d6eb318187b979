package watcher

import (
	"context"
	"time"

	"github.com/ritzau/taskboard/pkg/logging"
)

// Debouncer batches rapid file system events so a burst of saves triggers one reload
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run accumulates events until the input has been quiet for quietPeriod, or maxWait has
// passed since the first pending event, then emits a single event. The last change
// type wins: a file removed and then recreated is reported as written.
func (d *Debouncer) run(ctx context.Context) {
	var (
		quiet      <-chan time.Time
		deadline   <-chan time.Time
		pending    *ChangeEvent
		eventCount int
	)

	flush := func() {
		quiet, deadline = nil, nil
		if pending == nil {
			return
		}

		logging.Debug("flushing accumulated events", "count", eventCount)
		pending.Timestamp = time.Now()
		d.output <- *pending
		pending = nil
		eventCount = 0
	}

	defer close(d.output)

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			if pending == nil {
				pending = &ChangeEvent{}
				deadline = time.After(d.maxWait)
			}
			pending.Type = event.Type
			pending.Paths = append(pending.Paths, event.Paths...)
			eventCount++

			// Restart the quiet period
			quiet = time.After(d.quietPeriod)

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
