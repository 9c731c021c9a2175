package flipdisc

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var ErrNoGlyph = errors.New("no glyph for code")

// DotState is the requested side of one disc in a multi-disc call.
type DotState uint8

const (
	Off  DotState = 0
	On   DotState = 1
	Keep DotState = 0xFF // leave the disc as it is
)

// Segment7 drives one 7-segment module. Discs are numbered 0 to 22.
type Segment7 struct {
	c   *Controller
	occ int
}

// Seg7 returns the driver for the occ-th 7-segment module (1-based).
func (c *Controller) Seg7(occ int) Segment7 {
	return Segment7{c: c, occ: occ}
}

func (s Segment7) Disc(disc int, on bool) error {
	return s.c.Flip(FlipRequest{Type: profile.D7SEG, Occurrence: s.occ, Disc: disc, On: on})
}

// Show flips all 23 discs, in disc order, to draw the symbol code (see
// profile.GlyphCode).
func (s Segment7) Show(code int) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.drive(profile.D7SEG, s.occ, func(sh *profile.Shape) error {
		mask, ok := profile.Seg7Glyph(code)
		if !ok {
			return fmt.Errorf("7-segment %d: %w", code, ErrNoGlyph)
		}
		return s.c.showMask(sh, s.occ, mask)
	})
}

// Digits shows codes[i] on 7-segment module i+1. profile.NoData skips a
// module.
func (c *Controller) Digits(codes ...int) error {
	for i, code := range codes {
		if i >= chain.MaxSlots {
			break
		}
		if code == profile.NoData {
			continue
		}
		if err := c.Seg7(i + 1).Show(code); err != nil {
			return err
		}
	}
	return nil
}

// Line drives a single row or column of discs: D3X1 (D2X1), D1X3 or D1X7.
// Discs are numbered from 1.
type Line struct {
	c   *Controller
	t   profile.Type
	occ int
}

// Line returns a line driver for module type t. Set works on any shape;
// the named constructors below are the usual way in.
func (c *Controller) Line(t profile.Type, occ int) Line {
	return Line{c: c, t: t, occ: occ}
}

func (c *Controller) Dots(occ int) Line {
	return Line{c: c, t: profile.D3X1, occ: occ}
}

func (c *Controller) Line1x3(occ int) Line {
	return Line{c: c, t: profile.D1X3, occ: occ}
}

func (c *Controller) Line1x7(occ int) Line {
	return Line{c: c, t: profile.D1X7, occ: occ}
}

func (l Line) Disc(n int, on bool) error {
	return l.c.Flip(FlipRequest{Type: l.t, Occurrence: l.occ, Disc: n - 1, On: on})
}

// Set flips the discs of the module in order, states[0] being disc 1.
// Keep leaves a disc untouched.
func (l Line) Set(states ...DotState) error {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.c.drive(l.t, l.occ, func(s *profile.Shape) error {
		if len(states) > s.Discs() {
			return fmt.Errorf("%s has %d discs, got %d states: %w", s.Name, s.Discs(), len(states), profile.ErrDiscRange)
		}
		for i, st := range states {
			if st != Off && st != On && st != Keep {
				return fmt.Errorf("disc %d state %d: %w", i+1, st, ErrBadState)
			}
		}
		for i, st := range states {
			if st == Keep {
				continue
			}
			if err := l.c.flip(s, l.occ, i, st == On); err != nil {
				return err
			}
		}
		return nil
	})
}

// Matrix drives a rectangular module: D2X6, D3X3, D3X4 or D3X5. Discs are
// numbered from 1, left to right, row by row.
type Matrix struct {
	c   *Controller
	t   profile.Type
	occ int
}

func (c *Controller) Matrix(t profile.Type, occ int) Matrix {
	return Matrix{c: c, t: t, occ: occ}
}

func (c *Controller) Matrix3x5(occ int) Matrix {
	return c.Matrix(profile.D3X5, occ)
}

func (m Matrix) Disc(n int, on bool) error {
	return m.c.Flip(FlipRequest{Type: m.t, Occurrence: m.occ, Disc: n - 1, On: on})
}

// Pixel flips the disc at row and col, both 1-based.
func (m Matrix) Pixel(row, col int, on bool) error {
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	return m.c.drive(m.t, m.occ, func(s *profile.Shape) error {
		if row < 1 || row > s.Rows || col < 1 || col > s.Cols {
			return fmt.Errorf("%s row %d col %d: %w", m.t, row, col, profile.ErrDiscRange)
		}
		return m.c.flip(s, m.occ, (row-1)*s.Cols+col-1, on)
	})
}

// Show draws a symbol on a 3x5 module, flipping all 15 discs.
func (m Matrix) Show(code int) error {
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	return m.c.drive(m.t, m.occ, func(s *profile.Shape) error {
		if m.t != profile.D3X5 {
			return fmt.Errorf("%s: %w", m.t, ErrNoGlyph)
		}
		mask, ok := profile.Matrix3x5Glyph(code)
		if !ok {
			return fmt.Errorf("3x5 %d: %w", code, ErrNoGlyph)
		}
		return m.c.showMask(s, m.occ, uint32(mask))
	})
}

// Text shows codes[i] on 3x5 module i+1. profile.NoData skips a module.
func (c *Controller) Text(codes ...int) error {
	for i, code := range codes {
		if i >= chain.MaxSlots {
			break
		}
		if code == profile.NoData {
			continue
		}
		if err := c.Matrix3x5(i + 1).Show(code); err != nil {
			return err
		}
	}
	return nil
}

// showMask flips every disc of the module, bit n of mask giving the side
// of disc n. It runs inside drive.
func (c *Controller) showMask(s *profile.Shape, occ int, mask uint32) error {
	for d := 0; d < s.Discs(); d++ {
		if err := c.flip(s, occ, d, mask&(1<<uint(d)) != 0); err != nil {
			return err
		}
	}
	return nil
}
