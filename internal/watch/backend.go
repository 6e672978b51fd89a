// Package watch produces change events for the CSS sources in a single
// directory. Four interchangeable backends cover the host spectrum:
// watchman (preferred external service), fswatch (macOS-class tool),
// fsnotify (kernel notification), and polling (universal fallback). Select
// probes them in that order once per process and returns exactly one.
package watch

import (
	"context"
	"time"
)

// Kind classifies a change event. The polling backend cannot distinguish
// kinds and always reports KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindModified
	KindCreated
	KindDeleted
	KindRenamed
)

// String returns the log-facing name of the kind.
func (k Kind) String() string {
	switch k {
	case KindModified:
		return "modified"
	case KindCreated:
		return "created"
	case KindDeleted:
		return "deleted"
	case KindRenamed:
		return "renamed"
	}
	return "unknown"
}

// Event is one observed change to a trigger-worthy file. Events are
// ephemeral: produced by a backend, consumed immediately, never persisted.
type Event struct {
	Path string
	Kind Kind
}

// Backend yields change events for a directory. Implementations are not
// safe for concurrent Next calls; the orchestrator consumes events from a
// single loop. Close releases backend resources and, for watchman, the
// directory registration.
type Backend interface {
	Name() string
	// Next blocks until a trigger-worthy change occurs or ctx is done.
	Next(ctx context.Context) (Event, error)
	Close() error
}

// Config carries the settings shared by all backends.
type Config struct {
	// Dir is the watched working directory.
	Dir string
	// Settle is the debounce window for the notification backends; a burst
	// of saves inside the window collapses into one event.
	Settle time.Duration
	// PollInterval is the polling backend's tick period.
	PollInterval time.Duration
	// Filter decides trigger-worthiness; when nil a default filter for Dir
	// is built.
	Filter *Filter
	// Force selects a backend by name, skipping the probe chain.
	Force string
	// Logf, when set, receives selection and fallback diagnostics.
	Logf func(format string, args ...any)
}

const (
	defaultSettle       = 50 * time.Millisecond
	defaultPollInterval = time.Second
)

// withDefaults fills the zero-value knobs.
func (c Config) withDefaults() Config {
	if c.Settle <= 0 {
		c.Settle = defaultSettle
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Filter == nil {
		c.Filter = NewFilter(c.Dir)
	}
	if c.Logf == nil {
		c.Logf = func(string, ...any) {}
	}
	return c
}
