// Package flipdisc drives a daisy chain of up to eight flip-disc modules
// through a shared shift-register bus and a pulse shaper power supply.
//
// Every operation is synchronous: a call returns once each disc it touches
// has been pulsed and the chain outputs have been cleared again. A
// Controller serializes callers with a single lock held from the first
// frame to the end of the last settling delay.
package flipdisc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/frame"
	"github.com/coreman2200/funtimes-flipdisc/model"
	"github.com/coreman2200/funtimes-flipdisc/profile"
	"github.com/coreman2200/funtimes-flipdisc/pulse"
)

var (
	ErrNoShape  = errors.New("profile has no tables for module type")
	ErrBadState = errors.New("disc state must be Off, On or Keep")
)

// TestDelay is the flip delay used by Test.
const TestDelay = 100

// Attacher is implemented by transports that need to follow chain
// reconfiguration, such as the simulator.
type Attacher interface {
	Attach(c *chain.Chain)
}

type Option func(*Controller)

// WithProfile selects the addressing tables. The default is flipo-2023.
func WithProfile(p *profile.Profile) Option {
	return func(c *Controller) { c.prof = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithBoard makes the controller mirror commanded states into b.
func WithBoard(b *model.Board) Option {
	return func(c *Controller) { c.board = b }
}

type Controller struct {
	mu    sync.Mutex
	prof  *profile.Profile
	chain *chain.Chain
	comp  *frame.Composer
	tr    frame.Transport
	seq   *pulse.Sequencer
	board *model.Board
	log   zerolog.Logger

	delay  uint8
	frames int
	clears int
	// set by flip once a frame has gone to the transport, so drive knows
	// the outputs need clearing
	dirty bool
}

// New returns a controller for an empty chain. Call Configure before
// flipping anything.
func New(t frame.Transport, seq *pulse.Sequencer, opts ...Option) *Controller {
	c := &Controller{
		prof: profile.Default(),
		tr:   t,
		seq:  seq,
		log:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.chain = chain.New(c.prof)
	c.comp = frame.NewComposer(c.chain, t)
	if c.board == nil {
		c.board = model.NewBoard(c.chain)
	} else {
		c.board.Reset(c.chain)
	}
	c.delay = uint8(seq.Delay() / time.Millisecond)
	return c
}

// Configure declares the modules in chain order, nearest first. Slots not
// given are empty. The first call primes the power supply; every call
// clears all outputs.
func (c *Controller) Configure(types ...profile.Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(types) > chain.MaxSlots {
		c.log.Warn().Int("modules", len(types)).Msg("chain holds at most 8 modules, extra ignored")
	}
	c.chain.Configure(types...)
	c.board.Reset(c.chain)
	if a, ok := c.tr.(Attacher); ok {
		a.Attach(c.chain)
	}
	c.log.Info().Stringer("chain", c.chain).Int("frame_len", c.chain.FrameLength()).Msg("configured")

	if !c.seq.Primed() {
		if err := c.seq.Prime(); err != nil {
			return fmt.Errorf("prime: %w", err)
		}
	}
	return c.clear()
}

// SetDelay sets the pause after each flip, in milliseconds. 0 to 100 keeps
// animations readable.
func (c *Controller) SetDelay(ms uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setDelay(ms)
}

func (c *Controller) setDelay(ms uint8) {
	c.delay = ms
	c.seq.SetDelay(time.Duration(ms) * time.Millisecond)
}

func (c *Controller) Delay() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

// Chain returns a copy of the configured slots.
func (c *Controller) Chain() []chain.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.Slots()
}

// Board returns a snapshot of the commanded disc states.
func (c *Controller) Board() *model.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Clone()
}

// Frames counts addressed frames sent; Clears counts clear frames.
func (c *Controller) Frames() (frames, clears int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames, c.clears
}

func (c *Controller) Cycles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.Cycles()
}

// FlipRequest addresses one disc. Disc is 0-based.
type FlipRequest struct {
	Type       profile.Type `json:"type"`
	Occurrence int          `json:"occurrence"`
	Disc       int          `json:"disc"`
	On         bool         `json:"on"`
}

// Flip flips a single disc and clears the outputs. Requests for a module
// the chain does not hold are dropped without error.
func (c *Controller) Flip(r FlipRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drive(r.Type, r.Occurrence, func(s *profile.Shape) error {
		if r.Disc < 0 || r.Disc >= s.Discs() {
			return fmt.Errorf("%s disc %d: %w", r.Type, r.Disc, profile.ErrDiscRange)
		}
		return c.flip(s, r.Occurrence, r.Disc, r.On)
	})
}

// All flips every disc of every module to the color side.
func (c *Controller) All() error {
	return c.fillAll(true)
}

// Clear flips every disc of every module to the black side.
func (c *Controller) Clear() error {
	return c.fillAll(false)
}

func (c *Controller) fillAll(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fillChain(on)
}

func (c *Controller) fillChain(on bool) error {
	for _, s := range c.chain.Slots() {
		if _, ok := c.prof.Shape(s.Type); !ok {
			continue
		}
		err := c.drive(s.Type, s.Occurrence, func(sh *profile.Shape) error {
			for d := 0; d < sh.Discs(); d++ {
				if err := c.flip(sh, s.Occurrence, d, on); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Test clears the chain, sets every disc and clears again with a 100 ms
// flip delay, then restores the previous delay.
func (c *Controller) Test() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.delay
	c.setDelay(TestDelay)
	defer c.setDelay(prev)

	if err := c.fillChain(false); err != nil {
		return err
	}
	if err := c.fillChain(true); err != nil {
		return err
	}
	return c.fillChain(false)
}

// Sweep flips each disc of the chain to the color side and back, one at a
// time. ctx is checked between discs; a flip in progress always completes.
func (c *Controller) Sweep(ctx context.Context) error {
	for _, s := range c.Chain() {
		shape, ok := c.prof.Shape(s.Type)
		if !ok {
			continue
		}
		for d := 0; d < shape.Discs(); d++ {
			for _, on := range []bool{true, false} {
				if err := ctx.Err(); err != nil {
					return err
				}
				err := c.Flip(FlipRequest{Type: s.Type, Occurrence: s.Occurrence, Disc: d, On: on})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// drive runs fn against module occ of type t, then sends the closing clear
// frame. An fn that fails before sending anything leaves the bus
// untouched. It must be called with c.mu held.
func (c *Controller) drive(t profile.Type, occ int, fn func(s *profile.Shape) error) error {
	if c.chain.Fuse(occ, t) {
		c.log.Debug().Stringer("type", t).Int("occurrence", occ).Msg("fuse tripped, request dropped")
		return nil
	}
	s, ok := c.prof.Shape(t)
	if !ok {
		return fmt.Errorf("%s: %w", t, ErrNoShape)
	}
	c.dirty = false
	err := fn(s)
	if err != nil && !c.dirty {
		return err
	}
	if cerr := c.clear(); err == nil {
		err = cerr
	}
	return err
}

// flip sends one addressed frame and fires one pulse.
func (c *Controller) flip(s *profile.Shape, occ, disc int, on bool) error {
	ctl, err := s.Control(disc, on)
	if err != nil {
		return err
	}
	c.dirty = true
	if err := c.comp.Transmit(s.Type, occ, ctl); err != nil {
		return err
	}
	c.frames++
	if err := c.seq.Cycle(); err != nil {
		return fmt.Errorf("pulse: %w", err)
	}
	pos := c.chain.Locate(s.Type, occ)
	if err := c.board.Apply(pos, disc, on); err != nil {
		return err
	}
	c.log.Trace().Stringer("type", s.Type).Int("occurrence", occ).Int("disc", disc).Bool("on", on).Msg("flip")
	return nil
}

func (c *Controller) clear() error {
	c.clears++
	return c.comp.Clear()
}
