package model

import (
	"image/color"
)

const MAX_BRIGHTNESS uint8 = 200

const (
	ALPHA_OFFSET uint8 = 0x18
	GREEN_OFFSET uint8 = 0x10
	RED_OFFSET   uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// Preview colors for the two sides of a disc and for discs whose side is
// not known yet.
const (
	DFLT_COLOR_SIDE   uint32 = 0xFFFFCC00
	DFLT_BLACK_SIDE   uint32 = 0xFF101010
	DFLT_UNKNOWN_SIDE uint32 = 0x40404040
)

// ColorVal is an ARGB value laid out as A|G|R|B, the order LED strips
// expect it on the wire.
type ColorVal struct {
	val uint32
}

func NewColor(c uint32) ColorVal {
	return ColorVal{val: c}
}

func (c ColorVal) Color() uint32 {
	return c.val
}

// ToRGB folds alpha into the channels, capped at MAX_BRIGHTNESS.
func (c ColorVal) ToRGB() color.NRGBA {
	aa := float64(c.GetA())
	if aa > float64(MAX_BRIGHTNESS) {
		aa = float64(MAX_BRIGHTNESS)
	}
	aa /= 255.0
	return color.NRGBA{
		R: uint8(float64(c.GetR()) * aa),
		G: uint8(float64(c.GetG()) * aa),
		B: uint8(float64(c.GetB()) * aa),
		A: 255,
	}
}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & (mask)) >> off)
}

func (c *ColorVal) SetR(r uint8) {
	c.val = setcolor(c.val, r, RED_OFFSET)
}
func (c *ColorVal) SetG(g uint8) {
	c.val = setcolor(c.val, g, GREEN_OFFSET)
}
func (c *ColorVal) SetB(b uint8) {
	c.val = setcolor(c.val, b, BLUE_OFFSET)
}
func (c *ColorVal) SetA(a uint8) {
	c.val = setcolor(c.val, a, ALPHA_OFFSET)
}

func (c ColorVal) GetR() uint8 {
	return getcolor(c.val, RED_OFFSET)
}
func (c ColorVal) GetG() uint8 {
	return getcolor(c.val, GREEN_OFFSET)
}
func (c ColorVal) GetB() uint8 {
	return getcolor(c.val, BLUE_OFFSET)
}
func (c ColorVal) GetA() uint8 {
	return getcolor(c.val, ALPHA_OFFSET)
}

// Style recolors the preview of a board. Zero fields keep the defaults.
type Style struct {
	Face       uint32 // 0xRRGGBB of the color side
	Brightness uint8
}

func (s Style) Apply(b *Board) {
	if s.Face != 0 {
		b.Face.SetR(uint8(s.Face >> 16))
		b.Face.SetG(uint8(s.Face >> 8))
		b.Face.SetB(uint8(s.Face))
	}
	if s.Brightness != 0 {
		b.Face.SetA(s.Brightness)
		b.Back.SetA(s.Brightness)
	}
}
