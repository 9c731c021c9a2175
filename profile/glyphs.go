package profile

import (
	"strconv"
	"strings"
)

// Symbol codes understood by the segment and 3x5 glyph tables. Digits 0-9
// are their own codes.
const (
	ALL = 8
	CLR = 10
	A   = 11
	B   = 12
	C   = 13
	D   = 14
	E   = 15
	F   = 16
	G   = 17
	H   = 18
	I   = 19
	J   = 20
	K   = 21
	L   = 22
	M   = 23
	N   = 24
	O   = 25
	P   = 26
	Q   = 27
	R   = 28
	S   = 29
	T   = 30
	U   = 31
	V   = 32
	W   = 33
	X   = 34
	Y   = 35
	Z   = 36
	DEG = 37 // degree
	PFH = 37 // percent, first half (two 7-segment modules)
	PRC = 38 // percent on a 3x5
	PSH = 38 // percent, second half
	HLU = 39
	HLM = 40
	MIN = 40
	HLL = 41
	HLT = 42
	HLA = 43
	VLL = 44
	VLR = 1 // 7-segment; the 3x5 table keeps its own at VLR3X5
	VLA = 45

	VLR3X5 = 45
	EQL    = 46
	PLS    = 47
	AST    = 48
	TLD    = 49
	DOT    = 50
	CLN    = 51
	CMM    = 52
	APS    = 53
	QTT    = 54
	SLS    = 55
	BLS    = 56
	RBL    = 57
	RBR    = 58
	ABL    = 59
	ABR    = 60
	ATS    = 61
	ETS    = 62
	HSH    = 63
	DOL    = 64
	EXC    = 65
	QST    = 66
	ALL3X5 = 67

	// NoData marks an unused position in multi-module calls.
	NoData = 0xFF
)

// Seg7Glyph returns the 23-disc mask of code for the 7-segment module.
func Seg7Glyph(code int) (uint32, bool) {
	if code < 0 || code >= len(seg7Glyphs) {
		return 0, false
	}
	return seg7Glyphs[code], true
}

// Matrix3x5Glyph returns the 15-disc mask of code for the 3x5 module.
func Matrix3x5Glyph(code int) (uint16, bool) {
	if code < 0 || code >= len(matrix3x5Glyphs) {
		return 0, false
	}
	return matrix3x5Glyphs[code], true
}

var symbolNames = map[string]int{
	"ALL": ALL, "CLR": CLR, "DEG": DEG, "PFH": PFH, "PRC": PRC, "PSH": PSH,
	"HLU": HLU, "HLM": HLM, "MIN": MIN, "HLL": HLL, "HLT": HLT, "HLA": HLA,
	"VLL": VLL, "VLR": VLR, "VLA": VLA, "EQL": EQL, "PLS": PLS, "AST": AST,
	"TLD": TLD, "DOT": DOT, "CLN": CLN, "CMM": CMM, "APS": APS, "QTT": QTT,
	"SLS": SLS, "BLS": BLS, "RBL": RBL, "RBR": RBR, "ABL": ABL, "ABR": ABR,
	"ATS": ATS, "ETS": ETS, "HSH": HSH, "DOL": DOL, "EXC": EXC, "QST": QST,
}

// GlyphCode resolves a symbol name (DEG, HLM, ...), a single digit or
// letter, or a decimal code.
func GlyphCode(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if c, ok := symbolNames[s]; ok {
		return c, true
	}
	if len(s) == 1 {
		switch ch := s[0]; {
		case ch >= '0' && ch <= '9':
			return int(ch - '0'), true
		case ch >= 'A' && ch <= 'Z':
			return A + int(ch-'A'), true
		}
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 && v < NoData {
		return v, true
	}
	return 0, false
}
