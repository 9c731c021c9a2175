package bus

import (
	"errors"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/frame"
	"github.com/coreman2200/funtimes-flipdisc/model"
)

// Sim stands in for the modules. It decodes every latched frame back into
// a disc flip and keeps its own board, so what reached the wire can be
// compared with what was commanded.
type Sim struct {
	Recorder
	chain  *chain.Chain
	board  *model.Board
	drawer display.Drawer
	style  model.Style
	log    zerolog.Logger
}

type SimOption func(*Sim)

// WithDrawer renders the board after each flip, typically on
// screen.New(n) from periph.io/x/extra.
func WithDrawer(d display.Drawer) SimOption {
	return func(s *Sim) { s.drawer = d }
}

// WithStyle recolors the simulated board.
func WithStyle(st model.Style) SimOption {
	return func(s *Sim) { s.style = st }
}

func WithSimLogger(l zerolog.Logger) SimOption {
	return func(s *Sim) { s.log = l }
}

func NewSim(c *chain.Chain, opts ...SimOption) *Sim {
	s := &Sim{log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	s.Attach(c)
	return s
}

// Attach points the simulator at a reconfigured chain and forgets every
// disc state.
func (s *Sim) Attach(c *chain.Chain) {
	s.Recorder.mu.Lock()
	defer s.Recorder.mu.Unlock()
	s.chain = c
	s.board = model.NewBoard(c)
	s.style.Apply(s.board)
}

func (s *Sim) Latch() error {
	if err := s.Recorder.Latch(); err != nil {
		return err
	}
	f := s.Last()

	s.Recorder.mu.Lock()
	defer s.Recorder.mu.Unlock()
	fl, err := frame.Decode(s.chain, f)
	if errors.Is(err, frame.ErrBlank) {
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Hex("frame", f).Msg("undecodable frame")
		return err
	}
	if err := s.board.Apply(fl.Position, fl.Disc, fl.On); err != nil {
		return err
	}
	s.log.Trace().Stringer("flip", fl).Msg("sim")
	if s.drawer != nil {
		return s.board.Draw(s.drawer)
	}
	return nil
}

// Board returns a copy of the simulated discs.
func (s *Sim) Board() *model.Board {
	s.Recorder.mu.Lock()
	defer s.Recorder.mu.Unlock()
	return s.board.Clone()
}
