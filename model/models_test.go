package model_test

import (
	"bytes"
	"image/color"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	. "github.com/coreman2200/funtimes-flipdisc/model"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var TestStartColorChangesToExpectedColor = []struct {
	Start  uint32
	Given  uint32
	Expect uint32
}{
	{0xFF112233, 0x00112233, 0xFF224466},
	{0x00448800, 0xFF0000FF, 0xFF4488FF},
	{0x87650000, 0x00004321, 0x87654321},
	{0x37650105, 0x30004321, 0x67654426},
}

var TestRGBIsExpectedColor = []struct {
	A      uint8
	G      uint8
	R      uint8
	B      uint8
	Expect uint32
}{
	{0xFF, 0x11, 0x22, 0x33, 0xFF112233},
	{0x00, 0x2A, 0x44, 0x34, 0x002A4434},
	{0xAB, 0x3B, 0x88, 0x35, 0xAB3B8835},
	{0xFF, 0x5D, 0xCC, 0x37, 0xFF5DCC37},
}

func TestColorsRGB(t *testing.T) {
	for k, v := range TestRGBIsExpectedColor {
		t.Run("Given RGB"+strconv.Itoa(k), func(t *testing.T) {
			col := NewColor(0)
			col.SetA(v.A)
			col.SetR(v.R)
			col.SetG(v.G)
			col.SetB(v.B)
			assert.Equal(t, v.Expect, col.Color())
		})
	}
}

func TestColorsChanges(t *testing.T) {
	for k, v := range TestStartColorChangesToExpectedColor {
		t.Run("Given RGB"+strconv.Itoa(k), func(t *testing.T) {
			col1 := NewColor(v.Start)
			col2 := NewColor(v.Given)
			col1.SetA(col1.GetA() + col2.GetA())
			col1.SetR(col1.GetR() + col2.GetR())
			col1.SetG(col1.GetG() + col2.GetG())
			col1.SetB(col1.GetB() + col2.GetB())
			assert.Equal(t, v.Expect, col1.Color())
		})
	}
}

func TestStyleRecolorsBoard(t *testing.T) {
	b := NewBoard(chain.New(nil, profile.D3X1))
	Style{Face: 0x33CC66, Brightness: 0x80}.Apply(b)
	assert.Equal(t, uint32(0x8033CC66), b.Face.Color())
	assert.Equal(t, uint32(0x80101010), b.Back.Color())
	assert.Equal(t, uint32(DFLT_UNKNOWN_SIDE), b.Unknown.Color())

	plain := NewBoard(chain.New(nil, profile.D3X1))
	Style{}.Apply(plain)
	assert.Equal(t, uint32(DFLT_COLOR_SIDE), plain.Face.Color())
	assert.Equal(t, uint32(DFLT_BLACK_SIDE), plain.Back.Color())
}

func TestBrightnessCap(t *testing.T) {
	c := NewColor(0xFF00FF00)
	got := c.ToRGB()
	assert.InDelta(t, 200, int(got.R), 1)
	assert.Equal(t, color.NRGBA{R: got.R, A: 255}, got)
}

func TestBoardFollowsChain(t *testing.T) {
	c := chain.New(nil, profile.D7SEG, profile.D3X1, profile.D3X5)
	b := NewBoard(c)

	require.Len(t, b.Modules(), chain.MaxSlots)
	assert.Len(t, b.Discs(), 23+3+15)

	m, err := b.Module(2)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Rows)
	assert.Equal(t, 3, m.Cols)

	none, _ := b.Module(5)
	assert.Empty(t, none.Discs)
}

func TestApply(t *testing.T) {
	c := chain.New(nil, profile.D3X1, profile.D1X3)
	b := NewBoard(c)

	require.NoError(t, b.Apply(0, 0, true))
	require.NoError(t, b.Apply(0, 2, false))
	require.NoError(t, b.Apply(1, 1, true))
	assert.Equal(t, "0 D3X1#1 #?.\n1 D1X3#1 ?#?\n", b.String())

	assert.ErrorIs(t, b.Apply(0, 3, true), profile.ErrDiscRange)
	assert.ErrorIs(t, b.Apply(8, 0, true), ErrNoModule)
	assert.ErrorIs(t, b.Apply(4, 0, true), profile.ErrDiscRange)

	snap := b.Clone()
	require.NoError(t, b.Apply(1, 1, false))
	m, _ := snap.Module(1)
	assert.True(t, m.Discs[1].On)

	b.Reset(c)
	assert.Equal(t, "0 D3X1#1 ???\n1 D1X3#1 ???\n", b.String())
}

func TestImage(t *testing.T) {
	c := chain.New(nil, profile.D3X1)
	b := NewBoard(c)
	require.NoError(t, b.Apply(0, 1, true))
	require.NoError(t, b.Apply(0, 2, false))

	im := b.Image()
	assert.Equal(t, 3, im.Rect.Dx())
	assert.Equal(t, 1, im.Rect.Dy())
	assert.Equal(t, b.Unknown.ToRGB(), im.NRGBAAt(0, 0))
	assert.Equal(t, b.Face.ToRGB(), im.NRGBAAt(1, 0))
	assert.Equal(t, b.Back.ToRGB(), im.NRGBAAt(2, 0))
}

func TestDrawOnStrip(t *testing.T) {
	c := chain.New(nil, profile.D3X3)
	b := NewBoard(c)
	for i := 0; i < 9; i += 2 {
		require.NoError(t, b.Apply(0, i, true))
	}

	buf := bytes.Buffer{}
	o := nrzled.Opts{NumPixels: len(b.Discs()), Channels: 3, Freq: 2500 * physic.KiloHertz}
	d, err := nrzled.NewSPI(spitest.NewRecordRaw(&buf), &o)
	require.NoError(t, err)
	assert.Equal(t, "nrzled{recordraw}", d.String())

	require.NoError(t, b.Draw(d))
	assert.NotZero(t, buf.Len())
}
