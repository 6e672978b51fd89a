package watch

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// fswatchBackend shells out to fswatch, the macOS-class notification tool.
// Extension filtering happens at the tool level; every notified path still
// passes through the shared filter before triggering.
type fswatchBackend struct {
	dir    string
	filter *Filter
}

func newFSWatch(cfg Config) (*fswatchBackend, error) {
	if _, err := exec.LookPath("fswatch"); err != nil {
		return nil, fmt.Errorf("fswatch not found: %w", err)
	}
	return &fswatchBackend{dir: cfg.Dir, filter: cfg.Filter}, nil
}

func (b *fswatchBackend) Name() string { return "fswatch" }

// Next runs fswatch in one-event mode and re-arms it after each wait.
// fswatch applies filters in order: artifacts and maps are excluded, CSS is
// included, everything else is excluded.
func (b *fswatchBackend) Next(ctx context.Context) (Event, error) {
	for {
		cmd := exec.CommandContext(ctx, "fswatch",
			"--one-event",
			"--extended",
			"--exclude", `\.compiled\.css$`,
			"--exclude", `\.map$`,
			"--include", `\.css$`,
			"--exclude", `.*`,
			b.dir,
		)
		out, err := cmd.Output()
		if err != nil {
			if ctx.Err() != nil {
				return Event{}, ctx.Err()
			}
			return Event{}, fmt.Errorf("fswatch: %w", err)
		}

		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			path := strings.TrimSpace(line)
			if path == "" || !b.filter.TriggerWorthy(path) {
				continue
			}
			return Event{Path: path, Kind: KindModified}, nil
		}
	}
}

func (b *fswatchBackend) Close() error { return nil }
