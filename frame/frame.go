// Package frame composes the byte frames clocked into the shift-register
// chain. A frame always spans the whole chain: the bytes for the far end
// are shifted first, so the target slot's control bytes sit between the
// padding for the slots after it and the padding for the slots before it.
package frame

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var (
	ErrNotFound      = errors.New("module not in chain")
	ErrWidthMismatch = errors.New("control bytes do not match slot width")
	ErrBlank         = errors.New("blank frame")
	ErrUnknownFlip   = errors.New("frame does not match any control row")
)

// Transport is the serial collaborator that carries frames to the chain.
// Enable opens a frame, Latch closes it and commits the shifted bytes to
// the outputs.
type Transport interface {
	Enable() error
	TransmitByte(b byte) error
	Latch() error
}

type Composer struct {
	chain *chain.Chain
	tr    Transport
}

func NewComposer(c *chain.Chain, t Transport) *Composer {
	return &Composer{chain: c, tr: t}
}

func (c *Composer) Chain() *chain.Chain {
	return c.chain
}

// Build returns the frame that addresses occurrence occ of type t with
// control. Nothing is sent.
func (c *Composer) Build(t profile.Type, occ int, control []byte) ([]byte, error) {
	return Build(c.chain, t, occ, control)
}

// Build is the transport-free form of Composer.Build.
func Build(c *chain.Chain, t profile.Type, occ int, control []byte) ([]byte, error) {
	pos := c.Locate(t, occ)
	if pos == chain.NotFound {
		return nil, fmt.Errorf("%s #%d: %w", t, occ, ErrNotFound)
	}
	slot, _ := c.Slot(pos)
	if len(control) != slot.Width {
		return nil, fmt.Errorf("%s #%d: got %d bytes want %d: %w", t, occ, len(control), slot.Width, ErrWidthMismatch)
	}
	f := make([]byte, 0, c.FrameLength())
	f = append(f, make([]byte, c.BytesAfter(pos))...)
	f = append(f, control...)
	f = append(f, make([]byte, c.BytesBefore(pos))...)
	return f, nil
}

// Transmit sends one frame addressing occurrence occ of type t. When the
// module cannot be located the transport is never touched.
func (c *Composer) Transmit(t profile.Type, occ int, control []byte) error {
	f, err := c.Build(t, occ, control)
	if err != nil {
		return err
	}
	return c.send(f)
}

// Clear sends an all-zero frame, releasing every output of the chain.
func (c *Composer) Clear() error {
	return c.send(make([]byte, c.chain.FrameLength()))
}

func (c *Composer) send(f []byte) (err error) {
	if err := c.tr.Enable(); err != nil {
		return fmt.Errorf("enable: %w", err)
	}
	defer func() {
		if lerr := c.tr.Latch(); lerr != nil && err == nil {
			err = fmt.Errorf("latch: %w", lerr)
		}
	}()
	for i, b := range f {
		if err := c.tr.TransmitByte(b); err != nil {
			return fmt.Errorf("byte %d of %d: %w", i, len(f), err)
		}
	}
	return nil
}

// Flip is a decoded frame.
type Flip struct {
	Position   int
	Type       profile.Type
	Occurrence int
	Disc       int
	On         bool
}

func (f Flip) String() string {
	side := "off"
	if f.On {
		side = "on"
	}
	return fmt.Sprintf("%s#%d@%d disc %d %s", f.Type, f.Occurrence, f.Position, f.Disc, side)
}

// Decode finds the single energized slot of f and looks its bytes up in
// the chain's profile. Disc is 0-based.
func Decode(c *chain.Chain, f []byte) (Flip, error) {
	if len(f) != c.FrameLength() {
		return Flip{}, fmt.Errorf("frame of %d bytes for chain of %d: %w", len(f), c.FrameLength(), ErrWidthMismatch)
	}
	hit := chain.NotFound
	var ctl []byte
	for p := 0; p < chain.MaxSlots; p++ {
		s, _ := c.Slot(p)
		off := c.BytesAfter(p)
		b := f[off : off+s.Width]
		if isZero(b) {
			continue
		}
		if hit != chain.NotFound {
			return Flip{}, fmt.Errorf("slots %d and %d both driven: %w", hit, p, ErrUnknownFlip)
		}
		hit, ctl = p, b
	}
	if hit == chain.NotFound {
		return Flip{}, ErrBlank
	}
	s, _ := c.Slot(hit)
	shape, ok := c.Profile().Shape(s.Type)
	if !ok {
		return Flip{}, fmt.Errorf("slot %d holds %s: %w", hit, s.Type, ErrUnknownFlip)
	}
	for d := 0; d < shape.Discs(); d++ {
		for _, on := range []bool{true, false} {
			row := shape.Off[d]
			if on {
				row = shape.On[d]
			}
			if bytes.Equal(row, ctl) {
				return Flip{Position: hit, Type: s.Type, Occurrence: s.Occurrence, Disc: d, On: on}, nil
			}
		}
	}
	return Flip{}, fmt.Errorf("slot %d %x: %w", hit, ctl, ErrUnknownFlip)
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
