package capture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clipkeep/internal/history"
	"clipkeep/internal/platform"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type captured struct {
	Kind    history.Kind
	Content string
	Image   []byte
}

type fakeRecorder struct {
	mu  sync.Mutex
	got []captured
}

func (r *fakeRecorder) Capture(content string, kind history.Kind) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, captured{Kind: kind, Content: content})
	return "id", true
}

func (r *fakeRecorder) CaptureImage(data []byte) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, captured{Kind: history.KindImage, Image: data})
	return "id", true
}

func (r *fakeRecorder) all() []captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]captured(nil), r.got...)
}

func TestPoll_NoChangeIsNoop(t *testing.T) {
	port := platform.NewMemoryPort()
	rec := &fakeRecorder{}
	w := NewWatcher(port, rec, 0, nil)

	w.Poll()
	assert.Empty(t, rec.all())
}

func TestPoll_PriorityOrder(t *testing.T) {
	port := platform.NewMemoryPort()
	rec := &fakeRecorder{}
	w := NewWatcher(port, rec, 0, nil)

	port.SetText("hello")
	w.Poll()
	port.SetImage([]byte{1, 2})
	w.Poll()
	port.SetHTML("<b>x</b>")
	w.Poll()

	want := []captured{
		{Kind: history.KindText, Content: "hello"},
		{Kind: history.KindImage, Image: []byte{1, 2}},
		{Kind: history.KindHTML, Content: "<b>x</b>"},
	}
	if diff := cmp.Diff(want, rec.all()); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestPoll_SameTokenNotReprocessed(t *testing.T) {
	port := platform.NewMemoryPort()
	rec := &fakeRecorder{}
	w := NewWatcher(port, rec, 0, nil)

	port.SetText("once")
	w.Poll()
	w.Poll()
	w.Poll()
	assert.Len(t, rec.all(), 1)
}

func TestPoll_ErrorsSwallowed(t *testing.T) {
	port := platform.NewMemoryPort()
	rec := &fakeRecorder{}
	w := NewWatcher(port, rec, 0, nil)

	port.SetText("x")
	port.FailWith(errors.New("pasteboard gone"))
	assert.NotPanics(t, w.Poll)
	assert.Empty(t, rec.all())

	port.FailWith(nil)
	w.Poll()
	assert.Len(t, rec.all(), 1)
}

func TestPoll_IntoSession(t *testing.T) {
	port := platform.NewMemoryPort()
	s := history.New(history.Options{Clipboard: port})
	w := NewWatcher(port, s, 0, nil)

	port.SetText("hello")
	w.Poll()
	port.SetText("hello")
	w.Poll()

	assert.Equal(t, 1, s.Len())
}

func TestWatcher_StartStopRestart(t *testing.T) {
	defer goleak.VerifyNone(t)

	port := platform.NewMemoryPort()
	rec := &fakeRecorder{}
	w := NewWatcher(port, rec, 5*time.Millisecond, nil)

	require.NoError(t, w.Start(context.Background()))
	assert.ErrorIs(t, w.Start(context.Background()), ErrRunning)

	port.SetText("first")
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)

	w.Stop()
	w.Stop()

	// restart resumes from the last token
	require.NoError(t, w.Start(context.Background()))
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, rec.all(), 1)

	port.SetText("second")
	require.Eventually(t, func() bool { return len(rec.all()) == 2 }, time.Second, 5*time.Millisecond)
	w.Stop()
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWatcher(platform.NewMemoryPort(), &fakeRecorder{}, time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
