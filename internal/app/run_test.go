package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/lobsters-cli/internal/mode"
)

type runResult struct {
	code int
	err  error
}

func startRun(ctx context.Context, ta testApp) <-chan runResult {
	done := make(chan runResult, 1)
	go func() {
		code, err := ta.Run(ctx)
		done <- runResult{code: code, err: err}
	}()
	return done
}

func waitRun(t *testing.T, done <-chan runResult) runResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return runResult{}
	}
}

func TestRunLoadsFirstPageAndFlushesWritesOnQuit(t *testing.T) {
	ta := newTestApp(t)
	ta.backend.listings[mode.Default()] = makePosts("p", 3)

	done := startRun(context.Background(), ta)

	require.Eventually(t, func() bool {
		return len(ta.term.lastFrame().Posts) == 3
	}, 2*time.Second, 5*time.Millisecond)
	frame := ta.term.lastFrame()
	assert.Equal(t, 0, frame.Selected)
	assert.False(t, frame.LoadingListing)

	ta.term.input <- KeyEvent{Key: "r"}
	ta.term.input <- KeyEvent{Key: "q"}

	res := waitRun(t, done)
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, []Action{{Kind: MarkRead, ShortID: "p0"}}, ta.backend.appliedActions())
	assert.Equal(t, []mode.Mode{mode.Default()}, ta.backend.requested)
}

func TestRunForcedQuitExitsWithOne(t *testing.T) {
	ta := newTestApp(t)
	ta.term.input <- KeyEvent{Key: "ctrl+c"}

	start := time.Now()
	res := waitRun(t, startRun(context.Background(), ta))

	require.NoError(t, res.err)
	assert.Equal(t, 1, res.code)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.False(t, ta.flags.Running.Load())
}

func TestRunReturnsWorkerError(t *testing.T) {
	ta := newTestApp(t)
	boom := errors.New("boom")
	ta.backend.listErr = boom

	res := waitRun(t, startRun(context.Background(), ta))

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, boom)
	assert.Contains(t, res.err.Error(), "listing worker")
	assert.False(t, ta.flags.Running.Load())
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	ta := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := startRun(ctx, ta)

	require.Eventually(t, ta.flags.Running.Load, time.Second, time.Millisecond)
	cancel()

	res := waitRun(t, done)
	require.NoError(t, res.err)
	assert.Equal(t, 0, res.code)
}

func floodRefresh(ta testApp, n int) {
	ta.term.input = make(chan Event, n)
	for range n {
		ta.term.input <- KeyEvent{Key: "R"}
	}
}

func TestRunReturnsWhenSlowListingFailsAfterCancel(t *testing.T) {
	ta := newTestApp(t)
	boom := errors.New("upstream timeout")
	ta.backend.listErr = boom
	ta.backend.listDelay = 300 * time.Millisecond
	floodRefresh(ta, 100)

	ctx, cancel := context.WithCancel(context.Background())
	done := startRun(ctx, ta)
	time.Sleep(200 * time.Millisecond)
	cancel()

	res := waitRun(t, done)
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, boom)
	assert.False(t, ta.flags.Running.Load())
}

func TestRunReturnsWhenSlowListingFailsWithFullQueue(t *testing.T) {
	ta := newTestApp(t)
	boom := errors.New("upstream timeout")
	ta.backend.listErr = boom
	ta.backend.listDelay = 100 * time.Millisecond
	floodRefresh(ta, 100)

	res := waitRun(t, startRun(context.Background(), ta))

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, boom)
	assert.Contains(t, res.err.Error(), "listing worker")
}

func TestDispatchNeverBlocksOnFullPersistenceQueue(t *testing.T) {
	ta := newTestApp(t)
	ta.loaded(makePosts("p", 1))

	for range requestBuffer + 6 {
		ta.markUnread(0)
	}
	assert.Len(t, ta.actions.ch, requestBuffer)
	assert.Len(t, ta.actions.pending, 6)

	require.NoError(t, ta.applyPending(context.Background()))
	assert.Len(t, ta.backend.appliedActions(), 6)
	assert.Empty(t, ta.actions.pending)
}
