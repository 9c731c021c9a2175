package frame_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	. "github.com/coreman2200/funtimes-flipdisc/frame"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

// tape records transport calls as a string of events: E, bytes, L.
type tape struct {
	events  []string
	bytes   []byte
	failAt  int
	latched int
}

func (t *tape) Enable() error {
	t.events = append(t.events, "E")
	return nil
}

func (t *tape) TransmitByte(b byte) error {
	if t.failAt > 0 && len(t.bytes)+1 == t.failAt {
		return errors.New("wire cut")
	}
	t.bytes = append(t.bytes, b)
	t.events = append(t.events, "B")
	return nil
}

func (t *tape) Latch() error {
	t.latched++
	t.events = append(t.events, "L")
	return nil
}

func control(t *testing.T, ty profile.Type, disc int, on bool) []byte {
	s, ok := profile.Default().Shape(ty)
	require.True(t, ok)
	b, err := s.Control(disc, on)
	require.NoError(t, err)
	return b
}

func TestScenarioSecondSegment(t *testing.T) {
	c := chain.New(nil, profile.D7SEG, profile.D3X1, profile.D7SEG)
	tr := &tape{}
	ctl := control(t, profile.D7SEG, 5, true)

	require.NoError(t, NewComposer(c, tr).Transmit(profile.D7SEG, 2, ctl))

	require.Len(t, tr.bytes, 22)
	assert.Equal(t, make([]byte, 15), tr.bytes[:15])
	assert.Equal(t, ctl, tr.bytes[15:18])
	assert.Equal(t, make([]byte, 4), tr.bytes[18:])
	assert.Equal(t, "E", tr.events[0])
	assert.Equal(t, "L", tr.events[len(tr.events)-1])
	assert.Equal(t, 1, tr.latched)
}

func TestFrameSymmetry(t *testing.T) {
	layouts := [][]profile.Type{
		{profile.D7SEG, profile.D3X1, profile.D7SEG},
		{profile.D3X5, profile.D3X5, profile.D1X7, profile.D2X6, profile.D1X3, profile.D3X3, profile.D3X4, profile.D3X1},
		{profile.D1X3},
	}
	for _, types := range layouts {
		c := chain.New(nil, types...)
		for _, s := range c.Slots() {
			shape, ok := c.Profile().Shape(s.Type)
			if !ok {
				continue
			}
			for d := 0; d < shape.Discs(); d++ {
				ctl := control(t, s.Type, d, d%2 == 0)
				f, err := Build(c, s.Type, s.Occurrence, ctl)
				require.NoError(t, err)
				assert.Len(t, f, c.FrameLength())

				got, err := Decode(c, f)
				require.NoError(t, err)
				assert.Equal(t, Flip{
					Position:   c.Locate(s.Type, s.Occurrence),
					Type:       s.Type,
					Occurrence: s.Occurrence,
					Disc:       d,
					On:         d%2 == 0,
				}, got)
			}
		}
	}
}

func TestNotFoundNeverEnables(t *testing.T) {
	c := chain.New(nil, profile.D7SEG)
	tr := &tape{}
	err := NewComposer(c, tr).Transmit(profile.D3X5, 1, []byte{1, 2})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, tr.events)
}

func TestWidthMismatchSendsNothing(t *testing.T) {
	c := chain.New(nil, profile.D7SEG)
	tr := &tape{}
	err := NewComposer(c, tr).Transmit(profile.D7SEG, 1, []byte{1, 2})
	assert.ErrorIs(t, err, ErrWidthMismatch)
	assert.Empty(t, tr.events)
}

func TestClear(t *testing.T) {
	c := chain.New(nil, profile.D3X1, profile.D1X7)
	tr := &tape{}
	require.NoError(t, NewComposer(c, tr).Clear())
	assert.Equal(t, make([]byte, c.FrameLength()), tr.bytes)
	assert.Equal(t, 1, tr.latched)

	_, err := Decode(c, tr.bytes)
	assert.ErrorIs(t, err, ErrBlank)
}

func TestTransportErrorStillLatches(t *testing.T) {
	c := chain.New(nil, profile.D7SEG)
	tr := &tape{failAt: 3}
	err := NewComposer(c, tr).Clear()
	assert.Error(t, err)
	assert.Equal(t, 1, tr.latched)
	assert.Len(t, tr.bytes, 2)
}

func TestDecodeRejectsTwoTargets(t *testing.T) {
	c := chain.New(nil, profile.D3X1, profile.D3X1)
	f := make([]byte, c.FrameLength())
	f[c.BytesAfter(0)] = control(t, profile.D3X1, 0, true)[0]
	f[c.BytesAfter(1)] = control(t, profile.D3X1, 1, true)[0]
	_, err := Decode(c, f)
	assert.ErrorIs(t, err, ErrUnknownFlip)

	_, err = Decode(c, f[1:])
	assert.ErrorIs(t, err, ErrWidthMismatch)
}
