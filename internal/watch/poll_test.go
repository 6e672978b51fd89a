package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSS(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("/* css */\n"), 0644))
	return path
}

func backdate(t *testing.T, path string, d time.Duration) {
	t.Helper()
	past := time.Now().Add(-d)
	require.NoError(t, os.Chtimes(path, past, past))
}

func newTestPoll(t *testing.T, dir string) *pollBackend {
	t.Helper()
	cfg := Config{Dir: dir, PollInterval: 10 * time.Millisecond}.withDefaults()
	return newPoll(cfg)
}

func TestPollSnapshotIsQuiet(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "app.css")
	writeCSS(t, dir, "_base.css")

	b := newTestPoll(t, dir)
	b.scan()
	assert.Empty(t, b.pending, "unchanged files must not produce events")
}

func TestPollDetectsTimestampChange(t *testing.T) {
	dir := t.TempDir()
	app := writeCSS(t, dir, "app.css")
	writeCSS(t, dir, "_base.css")

	b := newTestPoll(t, dir)
	backdate(t, app, time.Hour)

	b.scan()
	require.Len(t, b.pending, 1)
	assert.Equal(t, app, b.pending[0].Path)
	assert.Equal(t, KindModified, b.pending[0].Kind)

	// One trigger per file per tick: the same timestamp does not re-fire.
	b.pending = nil
	b.scan()
	assert.Empty(t, b.pending)
}

func TestPollOneEventPerChangedFile(t *testing.T) {
	dir := t.TempDir()
	app := writeCSS(t, dir, "app.css")
	base := writeCSS(t, dir, "_base.css")

	b := newTestPoll(t, dir)
	backdate(t, app, time.Hour)
	backdate(t, base, 2*time.Hour)

	b.scan()
	require.Len(t, b.pending, 2, "one event per changed file, not per tick")
	paths := []string{b.pending[0].Path, b.pending[1].Path}
	assert.ElementsMatch(t, []string{app, base}, paths)
}

func TestPollPicksUpCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeCSS(t, dir, "app.css")

	b := newTestPoll(t, dir)
	fresh := writeCSS(t, dir, "new.css")

	b.scan()
	require.Len(t, b.pending, 1)
	assert.Equal(t, fresh, b.pending[0].Path)
	assert.Equal(t, KindCreated, b.pending[0].Kind)
}

func TestPollIgnoresArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifact := writeCSS(t, dir, "app.compiled.css")

	b := newTestPoll(t, dir)
	backdate(t, artifact, time.Hour)

	b.scan()
	assert.Empty(t, b.pending, "artifacts never trigger")
}

func TestPollNextDeliversPending(t *testing.T) {
	dir := t.TempDir()
	app := writeCSS(t, dir, "app.css")

	b := newTestPoll(t, dir)
	backdate(t, app, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ev, err := b.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, app, ev.Path)
}

func TestPollNextHonorsContext(t *testing.T) {
	b := newTestPoll(t, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := b.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
