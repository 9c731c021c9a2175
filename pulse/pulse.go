// Package pulse drives the pulse shaper power supply that fires the coil of
// the disc selected by the last latched frame.
package pulse

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

type State int

const (
	Idle State = iota
	Charging
	Release
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Charging:
		return "charging"
	case Release:
		return "release"
	case Settling:
		return "settling"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Clock blocks for d. It is the only source of time for the sequencer.
type Clock interface {
	Sleep(d time.Duration)
}

// RealClock spins for waits shorter than a millisecond, where the
// scheduler's wakeup latency would stretch the pulse, and sleeps otherwise.
type RealClock struct{}

func (RealClock) Sleep(d time.Duration) {
	if d >= time.Millisecond {
		time.Sleep(d)
		return
	}
	for start := time.Now(); time.Since(start) < d; {
	}
}

// Timing holds the charge and pulse lengths of the supply.
type Timing struct {
	Prime  time.Duration // first charge after power up
	Charge time.Duration
	Pulse  time.Duration
}

var DefaultTiming = Timing{
	Prime:  100 * time.Millisecond,
	Charge: 100 * time.Microsecond,
	Pulse:  time.Millisecond,
}

type Option func(*Sequencer)

func WithTiming(t Timing) Option {
	return func(s *Sequencer) { s.timing = t }
}

func WithDelay(d time.Duration) Option {
	return func(s *Sequencer) { s.delay = d }
}

// Sequencer runs Idle -> Charging -> Release -> Settling -> Idle once per
// flipped disc. It is not safe for concurrent use.
type Sequencer struct {
	charge  gpio.PinOut
	release gpio.PinOut
	clk     Clock
	timing  Timing
	delay   time.Duration

	primed   bool
	state    State
	cycles   int
	watchers []func(from, to State)
}

// New returns a sequencer in the Idle state. A nil clock selects
// RealClock.
func New(charge, release gpio.PinOut, clk Clock, opts ...Option) *Sequencer {
	if clk == nil {
		clk = RealClock{}
	}
	s := &Sequencer{
		charge:  charge,
		release: release,
		clk:     clk,
		timing:  DefaultTiming,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sequencer) State() State {
	return s.state
}

func (s *Sequencer) Primed() bool {
	return s.primed
}

// Cycles is the number of completed pulse cycles.
func (s *Sequencer) Cycles() int {
	return s.cycles
}

// SetDelay sets the settling time observed after each pulse.
func (s *Sequencer) SetDelay(d time.Duration) {
	s.delay = d
}

func (s *Sequencer) Delay() time.Duration {
	return s.delay
}

func (s *Sequencer) Timing() Timing {
	return s.timing
}

// OnTransition registers fn to be called on every state change.
func (s *Sequencer) OnTransition(fn func(from, to State)) {
	s.watchers = append(s.watchers, fn)
}

// Prime runs the long first charge. Cycle primes on its own when Prime was
// never called.
func (s *Sequencer) Prime() error {
	s.enter(Charging)
	if err := s.chargeFor(s.timing.Prime); err != nil {
		return s.abort(err)
	}
	s.primed = true
	s.enter(Idle)
	return nil
}

// Cycle charges the supply, releases one current pulse into the selected
// coil and waits out the flip delay.
func (s *Sequencer) Cycle() error {
	s.enter(Charging)
	d := s.timing.Charge
	if !s.primed {
		d = s.timing.Prime
	}
	if err := s.chargeFor(d); err != nil {
		return s.abort(err)
	}
	s.primed = true

	s.enter(Release)
	if err := s.release.Out(gpio.High); err != nil {
		return s.abort(fmt.Errorf("release high: %w", err))
	}
	s.clk.Sleep(s.timing.Pulse)
	if err := s.release.Out(gpio.Low); err != nil {
		return s.abort(fmt.Errorf("release low: %w", err))
	}

	s.enter(Settling)
	if s.delay > 0 {
		s.clk.Sleep(s.delay)
	}
	s.cycles++
	s.enter(Idle)
	return nil
}

// Halt drives both supply lines low.
func (s *Sequencer) Halt() error {
	err := s.release.Out(gpio.Low)
	if cerr := s.charge.Out(gpio.Low); err == nil {
		err = cerr
	}
	s.enter(Idle)
	return err
}

func (s *Sequencer) chargeFor(d time.Duration) error {
	if err := s.release.Out(gpio.Low); err != nil {
		return fmt.Errorf("release low: %w", err)
	}
	if err := s.charge.Out(gpio.High); err != nil {
		return fmt.Errorf("charge high: %w", err)
	}
	s.clk.Sleep(d)
	if err := s.charge.Out(gpio.Low); err != nil {
		return fmt.Errorf("charge low: %w", err)
	}
	return nil
}

func (s *Sequencer) abort(err error) error {
	_ = s.Halt()
	return err
}

func (s *Sequencer) enter(to State) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	for _, fn := range s.watchers {
		fn(from, to)
	}
}
