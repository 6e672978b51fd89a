package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Next after the backend's event stream has shut down.
var ErrClosed = errors.New("watch backend closed")

// notifyBackend subscribes to kernel file notifications through fsnotify.
// Setup can fail on platforms without a notification primitive, in which
// case the selector falls through to polling.
type notifyBackend struct {
	watcher *fsnotify.Watcher
	settle  time.Duration
	filter  *Filter
}

func newNotify(cfg Config) (*notifyBackend, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := watcher.Add(cfg.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("fsnotify add %s: %w", cfg.Dir, err)
	}
	return &notifyBackend{
		watcher: watcher,
		settle:  cfg.Settle,
		filter:  cfg.Filter,
	}, nil
}

func (b *notifyBackend) Name() string { return "fsnotify" }

// Next blocks for the next trigger-worthy kernel event, then absorbs the
// rest of the burst within the settle window before reporting, so one save
// (which many editors perform as write+rename) yields one event.
func (b *notifyBackend) Next(ctx context.Context) (Event, error) {
	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return Event{}, ErrClosed
			}
			return Event{}, err
		case fe, ok := <-b.watcher.Events:
			if !ok {
				return Event{}, ErrClosed
			}
			ev, relevant := b.toEvent(fe)
			if !relevant {
				continue
			}
			return b.settleDown(ctx, ev)
		}
	}
}

// settleDown waits out the settle window, replacing the pending event with
// any later trigger-worthy one, and returns when the window passes quietly.
func (b *notifyBackend) settleDown(ctx context.Context, pending Event) (Event, error) {
	timer := time.NewTimer(b.settle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-timer.C:
			return pending, nil
		case fe, ok := <-b.watcher.Events:
			if !ok {
				return pending, nil
			}
			if ev, relevant := b.toEvent(fe); relevant {
				pending = ev
				timer.Reset(b.settle)
			}
		}
	}
}

// toEvent maps an fsnotify event onto the backend-neutral model, reporting
// whether it is a trigger-worthy change.
func (b *notifyBackend) toEvent(fe fsnotify.Event) (Event, bool) {
	if !b.filter.TriggerWorthy(fe.Name) {
		return Event{}, false
	}
	kind := KindUnknown
	switch {
	case fe.Op.Has(fsnotify.Write):
		kind = KindModified
	case fe.Op.Has(fsnotify.Create):
		kind = KindCreated
	case fe.Op.Has(fsnotify.Remove):
		kind = KindDeleted
	case fe.Op.Has(fsnotify.Rename):
		kind = KindRenamed
	default:
		// Chmod-only events are not content changes
		return Event{}, false
	}
	return Event{Path: fe.Name, Kind: kind}, true
}

func (b *notifyBackend) Close() error {
	return b.watcher.Close()
}
