package watch

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// watchmanBackend delegates watching to the watchman service. Setup is two
// steps: register the directory with the service, then verify the one-shot
// wait tool is available. Either step failing abandons the backend and the
// selector falls through to the next tier.
type watchmanBackend struct {
	dir    string
	settle time.Duration
	filter *Filter
}

func newWatchman(cfg Config) (*watchmanBackend, error) {
	if _, err := exec.LookPath("watchman"); err != nil {
		return nil, fmt.Errorf("watchman not found: %w", err)
	}
	if _, err := exec.LookPath("watchman-wait"); err != nil {
		return nil, fmt.Errorf("watchman-wait not found: %w", err)
	}
	if out, err := exec.Command("watchman", "watch", cfg.Dir).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("watchman watch %s: %v: %s", cfg.Dir, err, strings.TrimSpace(string(out)))
	}
	return &watchmanBackend{
		dir:    cfg.Dir,
		settle: cfg.Settle,
		filter: cfg.Filter,
	}, nil
}

func (b *watchmanBackend) Name() string { return "watchman" }

// Next blocks on watchman for the next CSS change, one event at a time.
// Build artifacts and source maps are filtered out here; watchman's pattern
// language only narrows to *.css at the tool level.
func (b *watchmanBackend) Next(ctx context.Context) (Event, error) {
	for {
		cmd := exec.CommandContext(ctx, "watchman-wait",
			b.dir,
			"--max-events", "1",
			"-p", "*.css", "**/*.css",
		)
		out, err := cmd.Output()
		if err != nil {
			if ctx.Err() != nil {
				return Event{}, ctx.Err()
			}
			return Event{}, fmt.Errorf("watchman-wait: %w", err)
		}

		rel := strings.TrimSpace(string(out))
		if rel == "" {
			continue
		}
		path := filepath.Join(b.dir, rel)
		if !b.filter.TriggerWorthy(path) {
			continue
		}

		// Let the burst of saves finish before handing the path over; any
		// events inside the window are dropped by the compile guard anyway.
		select {
		case <-time.After(b.settle):
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
		return Event{Path: path, Kind: KindModified}, nil
	}
}

// Close releases the directory registration with the service.
func (b *watchmanBackend) Close() error {
	if out, err := exec.Command("watchman", "watch-del", b.dir).CombinedOutput(); err != nil {
		return fmt.Errorf("watchman watch-del %s: %v: %s", b.dir, err, strings.TrimSpace(string(out)))
	}
	return nil
}
