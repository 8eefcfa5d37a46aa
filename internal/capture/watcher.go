// Package capture polls the clipboard and feeds new content into the history.
package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	"clipkeep/internal/history"
	"clipkeep/internal/platform"

	"go.uber.org/zap"
)

const DefaultInterval = 500 * time.Millisecond

var ErrRunning = errors.New("watcher already running")

// Recorder receives captured clipboard content.
type Recorder interface {
	Capture(content string, kind history.Kind) (string, bool)
	CaptureImage(data []byte) (string, bool)
}

// Watcher compares the port's change token on every tick and records the
// clipboard contents when it moves.
type Watcher struct {
	port     platform.Port
	rec      Recorder
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	lastToken int64
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewWatcher(port platform.Port, rec Recorder, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{port: port, rec: rec, interval: interval, logger: logger}
}

// Start launches the polling loop. It stops when ctx is done or Stop is
// called. A stopped watcher can be started again and picks up from the last
// token it saw.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(ctx, w.done)

	w.logger.Info("clipboard watcher started", zap.Duration("interval", w.interval))
	return nil
}

// Stop halts the loop and waits for it to exit. Safe to call when stopped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	w.logger.Info("clipboard watcher stopped")
}

// Run polls until ctx is done. It is Start and Stop in one blocking call.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func (w *Watcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll runs a single tick: if the change token moved, the first non-empty
// format in the order text, image, HTML is recorded. Port errors count as
// no change.
func (w *Watcher) Poll() {
	token, err := w.port.ChangeToken()
	if err != nil {
		w.logger.Debug("read change token", zap.Error(err))
		return
	}

	w.mu.Lock()
	if token == w.lastToken {
		w.mu.Unlock()
		return
	}
	w.lastToken = token
	w.mu.Unlock()

	if text, err := w.port.ReadText(); err != nil {
		w.logger.Debug("read clipboard text", zap.Error(err))
	} else if text != "" {
		w.record(w.rec.Capture(text, history.KindText))
		return
	}

	if img, err := w.port.ReadImage(); err != nil {
		w.logger.Debug("read clipboard image", zap.Error(err))
	} else if len(img) > 0 {
		w.record(w.rec.CaptureImage(img))
		return
	}

	if html, err := w.port.ReadHTML(); err != nil {
		w.logger.Debug("read clipboard html", zap.Error(err))
	} else if html != "" {
		w.record(w.rec.Capture(html, history.KindHTML))
	}
}

func (w *Watcher) record(id string, ok bool) {
	if ok {
		w.logger.Debug("clipboard change recorded", zap.String("id", id))
	}
}
