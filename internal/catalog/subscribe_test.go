package catalog_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/testutil"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// itemRecorder collects the latest result delivered to a subscription.
type itemRecorder struct {
	mu    sync.Mutex
	calls int
	items []model.Item
}

func (r *itemRecorder) record(items []model.Item, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err == nil {
		r.items = items
	}
}

func (r *itemRecorder) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.Title)
	}
	return out
}

func (r *itemRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestSubscribeItems_RefreshesAfterWrites(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	rec := &itemRecorder{}
	sub := svc.SubscribeItems(ctx, catalog.Filter{Query: "alien"}, rec.record)
	t.Cleanup(func() { sub.Cancel(); sub.Wait() })

	require.Eventually(t, func() bool { return rec.count() >= 1 }, waitFor, tick)
	assert.Empty(t, rec.titles())

	_, err := svc.CreateItem(ctx, testutil.NewItem("Alien"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, testutil.NewItem("Heat"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"Alien"}, rec.titles())
	}, waitFor, tick)
}

func TestSubscribe_IgnoresUnrelatedTables(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var runs atomic.Int32
	sub := svc.Subscribe(ctx, catalog.TableLists, func(context.Context) { runs.Add(1) })
	t.Cleanup(func() { sub.Cancel(); sub.Wait() })
	require.Eventually(t, func() bool { return runs.Load() == 1 }, waitFor, tick)

	_, err := svc.CreateTag(ctx, "unrelated")
	require.NoError(t, err)

	_, err = svc.CreateList(ctx, "related", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return runs.Load() == 2 }, waitFor, tick)
}

func TestSubscribe_CoalescesBursts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	release := make(chan struct{})
	var runs atomic.Int32
	sub := svc.Subscribe(ctx, catalog.TableTags, func(context.Context) {
		if runs.Add(1) == 2 {
			<-release
		}
	})
	t.Cleanup(func() { sub.Cancel(); sub.Wait() })
	require.Eventually(t, func() bool { return runs.Load() == 1 }, waitFor, tick)

	// First write starts refresh #2, which blocks; the rest pile up.
	_, err := svc.CreateTag(ctx, "t0")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return runs.Load() == 2 }, waitFor, tick)
	for _, name := range []string{"t1", "t2", "t3", "t4"} {
		_, err := svc.CreateTag(ctx, name)
		require.NoError(t, err)
	}
	close(release)

	require.Eventually(t, func() bool { return runs.Load() == 3 }, waitFor, tick)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), runs.Load())
}

func TestSubscription_CancelStops(t *testing.T) {
	svc := newService(t)
	ctx, cancel := context.WithCancel(context.Background())

	var runs atomic.Int32
	sub := svc.Subscribe(ctx, catalog.AllTables, func(context.Context) { runs.Add(1) })
	assert.NotEmpty(t, sub.ID())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, waitFor, tick)

	cancel()
	sub.Wait()

	_, err := svc.CreateTag(context.Background(), "after")
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestSubscribeList_TracksDeletion(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	listID, err := svc.CreateList(ctx, "l", nil)
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		found bool
		name  string
	)
	sub := svc.SubscribeList(ctx, listID, func(l model.MediaList, ok bool, err error) {
		mu.Lock()
		defer mu.Unlock()
		found, name = ok, l.Name
	})
	t.Cleanup(func() { sub.Cancel(); sub.Wait() })

	read := func() (bool, string) {
		mu.Lock()
		defer mu.Unlock()
		return found, name
	}
	require.Eventually(t, func() bool { f, _ := read(); return f }, waitFor, tick)

	require.NoError(t, svc.RenameList(ctx, listID, "renamed"))
	require.Eventually(t, func() bool { _, n := read(); return n == "renamed" }, waitFor, tick)

	require.NoError(t, svc.DeleteList(ctx, listID))
	require.Eventually(t, func() bool { f, _ := read(); return !f }, waitFor, tick)
}
