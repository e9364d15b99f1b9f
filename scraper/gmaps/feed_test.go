package gmaps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeed reports counts[k] after the k-th scroll (1-based); once the
// sequence is exhausted the last value repeats.
type fakeFeed struct {
	counts  []int
	scrolls int
	failAt  int
}

func (f *fakeFeed) Scroll(context.Context) error {
	f.scrolls++
	if f.failAt > 0 && f.scrolls == f.failAt {
		return errors.New("page crashed")
	}
	return nil
}

func (f *fakeFeed) Count(context.Context) (int, error) {
	if f.scrolls == 0 {
		return 0, nil
	}
	i := f.scrolls - 1
	if i >= len(f.counts) {
		i = len(f.counts) - 1
	}
	return f.counts[i], nil
}

const (
	testSettle = 20 * time.Millisecond
	testPoll   = 2 * time.Millisecond
)

func TestCollectListings_ReachesTarget(t *testing.T) {
	feed := &fakeFeed{counts: []int{7, 14, 21, 28}}

	n, outcome, err := collectListings(context.Background(), feed, 20, testSettle, testPoll)
	require.NoError(t, err)

	assert.Equal(t, OutcomeReachedTarget, outcome)
	assert.Equal(t, 20, n, "takes exactly target listings")
	assert.Equal(t, 3, feed.scrolls)
}

func TestCollectListings_ExactTarget(t *testing.T) {
	feed := &fakeFeed{counts: []int{10, 20}}

	n, outcome, err := collectListings(context.Background(), feed, 20, testSettle, testPoll)
	require.NoError(t, err)

	assert.Equal(t, OutcomeReachedTarget, outcome)
	assert.Equal(t, 20, n)
}

func TestCollectListings_Stabilizes(t *testing.T) {
	feed := &fakeFeed{counts: []int{7, 12, 12, 30}}

	n, outcome, err := collectListings(context.Background(), feed, 120, testSettle, testPoll)
	require.NoError(t, err)

	assert.Equal(t, OutcomeStabilized, outcome)
	assert.Equal(t, 12, n, "takes everything visible, below target")
	assert.Equal(t, 3, feed.scrolls)
}

func TestCollectListings_NoResults(t *testing.T) {
	feed := &fakeFeed{counts: []int{0}}

	n, outcome, err := collectListings(context.Background(), feed, 120, testSettle, testPoll)
	require.NoError(t, err)

	assert.Equal(t, OutcomeStabilized, outcome)
	assert.Zero(t, n)
}

func TestCollectListings_ScrollError(t *testing.T) {
	feed := &fakeFeed{counts: []int{5, 10}, failAt: 2}

	_, _, err := collectListings(context.Background(), feed, 120, testSettle, testPoll)
	assert.Error(t, err)
}

func TestCollectListings_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feed := &fakeFeed{counts: []int{5}}
	_, _, err := collectListings(ctx, feed, 120, time.Second, testPoll)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "reached target", OutcomeReachedTarget.String())
	assert.Equal(t, "stabilized", OutcomeStabilized.String())
}
