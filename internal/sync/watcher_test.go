package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct{ ch chan struct{} }

func (f fakeSource) Changes() <-chan struct{} { return f.ch }

func newFakeSource() fakeSource { return fakeSource{ch: make(chan struct{}, 1)} }

func runCmd(t *testing.T, w *Watcher, first bool) any {
	t.Helper()
	cmd := w.WaitForNext()
	if first {
		cmd = w.Start()
	}
	require.NotNil(t, cmd)

	done := make(chan any, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return nil
	}
}

func TestWatcher_ForwardsChanges(t *testing.T) {
	browse, tags := newFakeSource(), newFakeSource()
	w := New()
	w.Register("browse", browse)
	w.Register("tags", tags)
	t.Cleanup(w.Stop)

	tags.ch <- struct{}{}
	assert.Equal(t, ChangedMsg{Name: "tags"}, runCmd(t, w, true))

	browse.ch <- struct{}{}
	assert.Equal(t, ChangedMsg{Name: "browse"}, runCmd(t, w, false))
}

func TestWatcher_StartTwice(t *testing.T) {
	w := New()
	w.Register("home", newFakeSource())
	require.NotNil(t, w.Start())
	assert.Nil(t, w.Start())
	w.Stop()
}

func TestWatcher_StopUnblocksWait(t *testing.T) {
	w := New()
	w.Register("home", newFakeSource())
	cmd := w.Start()
	w.Stop()

	assert.Nil(t, cmd())
	w.Stop()
}
