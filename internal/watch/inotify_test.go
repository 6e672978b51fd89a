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

func newTestNotify(t *testing.T, dir string) *notifyBackend {
	t.Helper()
	cfg := Config{Dir: dir, Settle: 20 * time.Millisecond}.withDefaults()
	b, err := newNotify(cfg)
	if err != nil {
		t.Skipf("kernel notification unavailable: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestNotifyReportsCSSChange(t *testing.T) {
	dir := t.TempDir()
	b := newTestNotify(t, dir)

	path := filepath.Join(dir, "app.css")
	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(path, []byte(".a{}"), 0644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ev, err := b.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, ev.Path)
	assert.NotEqual(t, KindUnknown, ev.Kind)
}

func TestNotifyIgnoresArtifactsAndNonCSS(t *testing.T) {
	dir := t.TempDir()
	b := newTestNotify(t, dir)

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "app.compiled.css"), []byte(".a{}"), 0644)
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := b.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded,
		"artifact and non-CSS writes must not produce events")
}

func TestNotifySettleCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	b := newTestNotify(t, dir)

	path := filepath.Join(dir, "app.css")
	go func() {
		time.Sleep(50 * time.Millisecond)
		// A burst of rapid saves inside the settle window
		for i := 0; i < 5; i++ {
			os.WriteFile(path, []byte(".a{}"), 0644)
			time.Sleep(2 * time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ev, err := b.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, ev.Path)

	// The window has passed quietly: no second event is pending.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel2()
	_, err = b.Next(ctx2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
