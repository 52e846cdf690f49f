package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncerFiresOnceWithLastInput(t *testing.T) {
	const delay = 100 * time.Millisecond
	d := NewDebouncer(delay)
	defer d.Stop()

	var (
		mu      sync.Mutex
		fired   []string
		firedAt time.Time
	)
	var lastTrigger time.Time
	for i, text := range []string{"p", "ph", "pho"} {
		if i > 0 {
			time.Sleep(20 * time.Millisecond)
		}
		text := text
		lastTrigger = time.Now()
		d.Trigger(context.Background(), func(ctx context.Context) {
			mu.Lock()
			defer mu.Unlock()
			fired = append(fired, text)
			firedAt = time.Now()
		})
	}

	time.Sleep(4 * delay)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"pho"}, fired)
	assert.GreaterOrEqual(t, firedAt.Sub(lastTrigger), delay)
}

func TestDebouncerCancelsSupersededTask(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	staleCtx := make(chan context.Context, 1)
	d.Trigger(context.Background(), func(ctx context.Context) {
		staleCtx <- ctx
		close(started)
		<-ctx.Done()
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first task never started")
	}

	var secondRan atomic.Bool
	done := make(chan struct{})
	d.Trigger(context.Background(), func(ctx context.Context) {
		secondRan.Store(true)
		close(done)
	})

	ctx := <-staleCtx
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second task never ran")
	}
	assert.True(t, secondRan.Load())
}

func TestDebouncerStopPreventsPendingTask(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var ran atomic.Bool
	d.Trigger(context.Background(), func(ctx context.Context) { ran.Store(true) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestNewDebouncerDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewDebouncer(0).Delay())
}
