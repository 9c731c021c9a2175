package loop

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoopRunsUntilDone(t *testing.T) {
	n := 0
	l := New(time.Millisecond, func(ctx context.Context, _ time.Duration) error {
		n++
		if n == 3 {
			return ErrDone
		}
		return nil
	}, zerolog.Nop())

	assert.NoError(t, l.Start(context.Background()))
	assert.Equal(t, 3, n)
}

func TestLoopReturnsStepError(t *testing.T) {
	boom := errors.New("boom")
	l := New(time.Millisecond, func(context.Context, time.Duration) error { return boom }, zerolog.Nop())
	assert.ErrorIs(t, l.Start(context.Background()), boom)
}

func TestLoopStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(time.Hour, func(context.Context, time.Duration) error {
		cancel()
		return nil
	}, zerolog.Nop())
	assert.NoError(t, l.Start(ctx))
}

func TestLoopStop(t *testing.T) {
	var l *Looper
	l = New(time.Hour, func(context.Context, time.Duration) error {
		l.Stop()
		l.Stop()
		return nil
	}, zerolog.Nop())
	assert.NoError(t, l.Start(context.Background()))
}

func TestDefaultInterval(t *testing.T) {
	l := New(0, func(context.Context, time.Duration) error { return ErrDone }, zerolog.Nop())
	assert.Equal(t, DefaultInterval, l.Interval)
}

func TestInterruptCancelsRunningStep(t *testing.T) {
	cancelled := false
	l := New(time.Hour, func(ctx context.Context, _ time.Duration) error {
		p, err := os.FindProcess(os.Getpid())
		if err != nil {
			return err
		}
		if err := p.Signal(os.Interrupt); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			cancelled = true
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return nil
		}
	}, zerolog.Nop())

	assert.NoError(t, l.Start(context.Background()))
	assert.True(t, cancelled)
}

func TestStopCancelsRunningStep(t *testing.T) {
	var l *Looper
	l = New(time.Hour, func(ctx context.Context, _ time.Duration) error {
		l.Stop()
		<-ctx.Done()
		return ctx.Err()
	}, zerolog.Nop())
	assert.NoError(t, l.Start(context.Background()))
}
