package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop() // must return promptly without deadlock
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	s.Stop()
	s.Stop() // must not panic or deadlock
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working...")
	s.Start()

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent context cancellation")
	}
	s.Stop()
}
