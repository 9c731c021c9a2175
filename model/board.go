// Package model mirrors the disc states the software has commanded. The bus
// is write-only, so the mirror is what was asked for, not what the discs
// actually show.
package model

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"periph.io/x/conn/v3/display"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var ErrNoModule = errors.New("no module at position")

type Disc struct {
	index int
	On    bool
	Known bool
}

func (d *Disc) Index() int {
	return d.index
}

// Module is the mirror of one chain slot. Slots without a shape in the
// profile (NONE or unknown codes) have no discs.
type Module struct {
	index      int
	Type       profile.Type
	Occurrence int
	Rows       int
	Cols       int
	Discs      []*Disc
}

func NewModule(pos int, s chain.Slot, p *profile.Profile) *Module {
	m := &Module{
		index:      pos,
		Type:       s.Type,
		Occurrence: s.Occurrence,
	}
	shape, ok := p.Shape(s.Type)
	if !ok {
		return m
	}
	m.Rows, m.Cols = shape.Rows, shape.Cols
	m.Discs = make([]*Disc, shape.Discs())
	for i := range m.Discs {
		m.Discs[i] = &Disc{index: i}
	}
	return m
}

func (m *Module) Index() int {
	return m.index
}

// Pattern renders the module as one rune per disc: '#' color side,
// '.' black side, '?' unknown.
func (m *Module) Pattern() string {
	var b strings.Builder
	for _, d := range m.Discs {
		switch {
		case !d.Known:
			b.WriteByte('?')
		case d.On:
			b.WriteByte('#')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

type Board struct {
	modules []*Module
	Face    ColorVal
	Back    ColorVal
	Unknown ColorVal
}

func NewBoard(c *chain.Chain) *Board {
	b := &Board{
		Face:    NewColor(DFLT_COLOR_SIDE),
		Back:    NewColor(DFLT_BLACK_SIDE),
		Unknown: NewColor(DFLT_UNKNOWN_SIDE),
	}
	b.Reset(c)
	return b
}

// Reset rebuilds the mirror for c. Every disc becomes unknown.
func (b *Board) Reset(c *chain.Chain) {
	b.modules = make([]*Module, 0, chain.MaxSlots)
	for i, s := range c.Slots() {
		b.modules = append(b.modules, NewModule(i, s, c.Profile()))
	}
}

func (b *Board) Modules() []*Module {
	return b.modules
}

func (b *Board) Module(pos int) (*Module, error) {
	if pos < 0 || pos >= len(b.modules) {
		return nil, fmt.Errorf("%d: %w", pos, ErrNoModule)
	}
	return b.modules[pos], nil
}

// Apply records that disc (0-based) of the module at pos was flipped.
func (b *Board) Apply(pos, disc int, on bool) error {
	m, err := b.Module(pos)
	if err != nil {
		return err
	}
	if disc < 0 || disc >= len(m.Discs) {
		return fmt.Errorf("%s #%d disc %d: %w", m.Type, m.Occurrence, disc, profile.ErrDiscRange)
	}
	d := m.Discs[disc]
	d.On, d.Known = on, true
	return nil
}

func (b *Board) Discs() []*Disc {
	r := make([]*Disc, 0)
	for _, m := range b.modules {
		r = append(r, m.Discs...)
	}
	return r
}

// Clone returns a deep copy that shares nothing with b.
func (b *Board) Clone() *Board {
	c := &Board{Face: b.Face, Back: b.Back, Unknown: b.Unknown}
	for _, m := range b.modules {
		mm := *m
		mm.Discs = make([]*Disc, len(m.Discs))
		for i, d := range m.Discs {
			dd := *d
			mm.Discs[i] = &dd
		}
		c.modules = append(c.modules, &mm)
	}
	return c
}

// Image lays every disc of the chain out on a single row, in chain order.
func (b *Board) Image() *image.NRGBA {
	ds := b.Discs()
	im := image.NewNRGBA(image.Rect(0, 0, len(ds), 1))
	for x, d := range ds {
		c := b.Unknown
		if d.Known {
			c = b.Back
			if d.On {
				c = b.Face
			}
		}
		im.SetNRGBA(x, 0, c.ToRGB())
	}
	return im
}

// Draw renders the board on d, a console screen or an LED strip preview.
func (b *Board) Draw(d display.Drawer) error {
	return d.Draw(d.Bounds(), b.Image(), image.Point{})
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, m := range b.modules {
		if len(m.Discs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%d %s#%d %s\n", m.index, m.Type, m.Occurrence, m.Pattern())
	}
	return sb.String()
}
