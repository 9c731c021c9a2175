// Package loop runs a step function on a ticker until it is told to stop,
// interrupted, or the step fails.
package loop

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const DefaultInterval = time.Second

// ErrDone may be returned by a step to end the loop cleanly.
var ErrDone = errors.New("loop done")

// Step is called once per tick with the time since Start.
type Step func(ctx context.Context, elapsed time.Duration) error

type Looper struct {
	Interval time.Duration
	Step     Step
	Log      zerolog.Logger

	quit   chan struct{}
	once   sync.Once
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup
	c      chan os.Signal
	start  time.Time
	err    error
}

func New(interval time.Duration, step Step, log zerolog.Logger) *Looper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Looper{Interval: interval, Step: step, Log: log, quit: make(chan struct{})}
}

func (l *Looper) refresh() {
	defer l.wg.Done()
	defer l.cancel()

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	// first step runs immediately rather than one interval in
	if l.step() {
		return
	}
	for {
		select {
		case <-ticker.C:
			if l.step() {
				return
			}

		case <-l.ctx.Done():
			return
		}
	}
}

// watch cancels the step context on an interrupt or Stop, so a step in
// progress sees it too.
func (l *Looper) watch() {
	select {
	case sig := <-l.c:
		l.Log.Info().Str("signal", sig.String()).Msg("aborting")
		l.cancel()
	case <-l.quit:
		l.cancel()
	case <-l.ctx.Done():
	}
}

// step runs Step once and reports whether the loop should end.
func (l *Looper) step() bool {
	err := l.Step(l.ctx, time.Since(l.start))
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrDone), errors.Is(err, context.Canceled):
	default:
		l.err = err
	}
	return true
}

// Start blocks until the loop ends and returns the step error that ended
// it, if any.
func (l *Looper) Start(ctx context.Context) error {
	l.ctx, l.cancel = context.WithCancel(ctx)
	l.wg = &sync.WaitGroup{}
	l.wg.Add(1)

	l.c = make(chan os.Signal, 1)
	signal.Notify(l.c, os.Interrupt)
	defer func() {
		signal.Stop(l.c)
		l.cancel()
	}()

	l.start = time.Now()
	go l.watch()
	go l.refresh()

	l.wg.Wait()
	return l.err
}

// Stop ends a running loop. It is safe to call more than once.
func (l *Looper) Stop() {
	l.once.Do(func() { close(l.quit) })
}
