package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := Path(dir)
	require.NoError(t, Default().Save(path))

	var (
		mu  sync.Mutex
		got *Config
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) {
			mu.Lock()
			got = c
			mu.Unlock()
		}, nil)
	}()

	// give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	cfg := Default()
	cfg.Templates = map[string]string{"reloaded": "yes"}
	require.NoError(t, cfg.Save(path))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Templates["reloaded"] == "yes"
	}, 2*time.Second, 20*time.Millisecond)

	// other files in the directory are ignored
	mu.Lock()
	got = nil
	mu.Unlock()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(3 * reloadDebounce)
	mu.Lock()
	assert.Nil(t, got)
	mu.Unlock()

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", FileName), func(*Config) {}, nil)
	assert.Error(t, err)
}
