package watch

import (
	"fmt"
)

// Select probes the backend chain in priority order and returns exactly one
// backend: watchman, then fswatch, then fsnotify, with polling as the
// unconditional terminal fallback. Probe or setup failure of a higher tier
// is non-fatal and logged as a warning. Selection happens once per process;
// there is no re-probing after a backend starts.
//
// cfg.Force bypasses the chain and selects a backend by name; an unknown
// name or a failing forced setup is an error rather than a fallthrough.
func Select(cfg Config) (Backend, error) {
	cfg = cfg.withDefaults()

	if cfg.Force != "" {
		return forceSelect(cfg)
	}

	if wm, err := newWatchman(cfg); err == nil {
		return wm, nil
	} else {
		cfg.Logf("watchman unavailable (%v), falling back", err)
	}

	if fw, err := newFSWatch(cfg); err == nil {
		return fw, nil
	} else {
		cfg.Logf("fswatch unavailable (%v), falling back", err)
	}

	if nb, err := newNotify(cfg); err == nil {
		return nb, nil
	} else {
		cfg.Logf("fsnotify unavailable (%v), falling back to polling", err)
	}

	return newPoll(cfg), nil
}

func forceSelect(cfg Config) (Backend, error) {
	switch cfg.Force {
	case "watchman":
		return newWatchman(cfg)
	case "fswatch":
		return newFSWatch(cfg)
	case "fsnotify":
		return newNotify(cfg)
	case "poll":
		return newPoll(cfg), nil
	}
	return nil, fmt.Errorf("unknown watch backend %q (valid: watchman, fswatch, fsnotify, poll)", cfg.Force)
}
