package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// pollBackend is the universal fallback: it snapshots modification
// timestamps of all eligible CSS files (partials included, artifacts
// excluded) and diffs them on a fixed interval. Files created after the
// snapshot are picked up naturally because each tick re-globs the directory.
type pollBackend struct {
	dir      string
	interval time.Duration
	filter   *Filter
	modTimes map[string]time.Time
	pending  []Event
}

func newPoll(cfg Config) *pollBackend {
	b := &pollBackend{
		dir:      cfg.Dir,
		interval: cfg.PollInterval,
		filter:   cfg.Filter,
		modTimes: make(map[string]time.Time),
	}
	// Initial snapshot: changes are reported relative to process start
	b.scan()
	b.pending = nil
	return b
}

func (b *pollBackend) Name() string { return "poll" }

// Next drains any changes discovered on a previous tick before arming the
// ticker again, so multiple files changed in one tick each yield exactly
// one event.
func (b *pollBackend) Next(ctx context.Context) (Event, error) {
	if ev, ok := b.pop(); ok {
		return ev, nil
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-ticker.C:
			b.scan()
			if ev, ok := b.pop(); ok {
				return ev, nil
			}
		}
	}
}

func (b *pollBackend) pop() (Event, bool) {
	if len(b.pending) == 0 {
		return Event{}, false
	}
	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev, true
}

// scan re-globs the directory, diffs timestamps against the stored
// snapshot, and queues one event per changed or newly created file.
func (b *pollBackend) scan() {
	matches, err := doublestar.FilepathGlob(filepath.Join(b.dir, "*.css"))
	if err != nil {
		return
	}
	sort.Strings(matches)

	seen := make(map[string]bool, len(matches))
	for _, path := range matches {
		if !b.filter.TriggerWorthy(path) {
			continue
		}
		seen[path] = true

		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		prev, known := b.modTimes[path]
		if !known || !info.ModTime().Equal(prev) {
			b.modTimes[path] = info.ModTime()
			kind := KindModified
			if !known {
				kind = KindCreated
			}
			b.pending = append(b.pending, Event{Path: path, Kind: kind})
		}
	}

	// Forget deleted files so recreation counts as a change
	for path := range b.modTimes {
		if !seen[path] {
			delete(b.modTimes, path)
		}
	}
}

func (b *pollBackend) Close() error { return nil }
