package http

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanupIdle() int {
	c.calls.Add(1)
	return 1
}

func (c *countingCleaner) Clients() int { return 0 }

func TestRunRateLimitCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cleaner := &countingCleaner{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() {
		done <- RunRateLimitCleanup(ctx, cleaner, 5*time.Millisecond, logger)
	}()

	require.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after cancel")
	}
}
