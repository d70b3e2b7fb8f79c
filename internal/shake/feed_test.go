package shake

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock(step time.Duration) func() time.Time {
	at := t0
	return func() time.Time {
		at = at.Add(step)
		return at
	}
}

func TestFeed_DrivesDetector(t *testing.T) {
	input := strings.Join([]string{
		"# baseline",
		"0 0 0",
		"20,0,0",
		"-20, 0, 0",
		"",
		"20 0 0",
		"-20 0 0",
		"20 0 0",
		"-20 0 0",
	}, "\n")

	calls := 0
	d := New(func() { calls++ })
	err := Feed(context.Background(), strings.NewReader(input), d, steppingClock(200*time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFeed_MalformedLine(t *testing.T) {
	d := New(nil)
	err := Feed(context.Background(), strings.NewReader("0 0 0\n1 2\n"), d, steppingClock(time.Second))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample line 2")
}

func TestFeed_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Feed(ctx, strings.NewReader("0 0 0\n"), New(nil), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeed_StartsFromFreshBaseline(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	calls := 0
	d := New(func() { calls++ }, WithMinHits(1))
	d.Sample(0, 0, 0, t0)

	later := func() time.Time { return t0.Add(200 * time.Millisecond) }
	require.NoError(t, Feed(context.Background(), strings.NewReader("100 100 100\n"), d, later))
	assert.Zero(t, calls, "first fed sample only sets the baseline")
}
